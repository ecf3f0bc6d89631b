package model

// PageData is the input of a single composition. Params maps placeholder
// tokens to their values; tokens missing from Params stay in the output.
type PageData struct {
	PageTitle  string
	Content    string
	Layout     string
	Background AssetRef
	Params     map[string]string
}
