package messaging

type ChangeTopic string

const (
	StorefrontEvents ChangeTopic = "storefront_events"
	CatalogChanged   ChangeTopic = "catalog_changed"
)

const DefaultPrefix = "global"
