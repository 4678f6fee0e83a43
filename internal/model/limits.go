package model

// Input limits applied on the edit path. Stored data may exceed them.
const (
	MaxNestingLevel      = 19
	MaxImagesPerItem     = 20
	MaxPropertiesPerItem = 50

	MaxNameLength          = 70
	MaxCategoryLength      = 50
	MaxPropertyKeyLength   = 30
	MaxPropertyValueLength = 75
)
