package config

// DomainConfig holds the board's business rules and presentation constants
type DomainConfig struct {
	// Node constraints
	MaxNodeNameLength int
	NodeNameFormat    string

	// Image constraints
	ImageSize         int
	AllowedImageTypes []string
	DefaultImageName  string
	MinCropZoom       float64
	MaxCropZoom       float64

	// Card layout, in canvas pixels
	CardWidth   float64
	CardHeight  float64
	CardPadding float64
	CardBorder  float64
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodeNameLength: 64,
		NodeNameFormat:    "Node %d",

		ImageSize:         512,
		AllowedImageTypes: []string{"image/png", "image/jpeg"},
		DefaultImageName:  "image.png",
		MinCropZoom:       1,
		MaxCropZoom:       3,

		CardWidth:   160,
		CardHeight:  200,
		CardPadding: 10,
		CardBorder:  2,
	}
}

// IsAllowedImageType reports whether contentType may be attached to a node
func (c *DomainConfig) IsAllowedImageType(contentType string) bool {
	for _, t := range c.AllowedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
