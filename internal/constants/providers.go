package constants

// Provider identifiers, in registration order.
const (
	ProviderStreamTP = "streamtp"
	ProviderLa12HD   = "la12hd"
	ProviderEnVivo   = "1envivo"
)

// ProviderDisplayNames maps provider ids to the names shown in stream titles.
var ProviderDisplayNames = map[string]string{
	ProviderStreamTP: "StreamTP",
	ProviderLa12HD:   "La12HD",
	ProviderEnVivo:   "1EnVivo",
}
