// Package constants defines application-wide constants and default values.
package constants

const (
	// Addon metadata
	AddonID          = "com.stremio.sports.live.addon"
	AddonVersion     = "1.0.0"
	AddonName        = "Sports Live"
	AddonDescription = "Live sporting events"
	AddonLogo        = "https://i.imgur.com/eo6sbBO.png"

	// Content type served by the addon
	ContentTypeTV = "tv"

	// Catalog and id namespace
	CatalogID     = "sportslive_events_direct"
	CatalogName   = "Eventos Deportivos"
	IDPrefix      = "sportslive:"
	PosterShapeTV = "tv"
	ExtraStatus   = "estado"
	ExtraCategory = "categoria"

	// Default configuration values
	DefaultPort         = "7000"
	DefaultLogLevel     = "info"
	DefaultDatabasePath = "./data/sportslive.db"

	// Cache settings for filtered event listings
	DefaultCacheSize = 64
)

// Status filter options, as shown in the catalog extra.
const (
	StatusAll      = "Todos"
	StatusLive     = "En vivo"
	StatusUpcoming = "Pronto"
	StatusFinished = "Finalizados"
)

// CategoryAll is the catalog option that disables category filtering.
const CategoryAll = "Todas"

// Display states of an event group.
const (
	DisplayLive     = "EN_VIVO"
	DisplayUpcoming = "PRONTO"
	DisplayFinished = "FINALIZADO"
)

// UnknownChannel is used when a link carries no stream parameter.
const UnknownChannel = "Canal Desconocido"

// StatusOptions lists the status filter values in display order.
var StatusOptions = []string{StatusAll, StatusLive, StatusUpcoming, StatusFinished}
