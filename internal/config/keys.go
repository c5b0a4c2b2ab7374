package config

// Recognised dashboard keys. All are optional.
const (
	KeyLatitude         = "HQ_LAT"
	KeyLongitude        = "HQ_LON"
	KeyWeatherURL       = "WEATHER_URL"
	KeyMediaURL         = "JELLYFIN_URL"
	KeyMediaAPIKey      = "JELLYFIN_API_KEY"
	KeyFilterURL        = "ADGUARD_URL"
	KeyFilterUser       = "ADGUARD_USER"
	KeyFilterPass       = "ADGUARD_PASS"
	KeyPingHost1        = "PING_HOST_1"
	KeyPingLabel1       = "PING_LABEL_1"
	KeyPingHost2        = "PING_HOST_2"
	KeyPingLabel2       = "PING_LABEL_2"
	KeyHiddenContainers = "HIDDEN_CONTAINERS"
	KeyTheme            = "THEME"
	KeyFont             = "FONT"
	KeyAppTitle         = "APP_TITLE"
	KeyLogoPath         = "LOGO_PATH"
)

// Defaults holds the value used for each recognised key when the store
// has none.
var Defaults = map[string]string{
	KeyLatitude:         "40.7128",
	KeyLongitude:        "-74.0060",
	KeyWeatherURL:       "https://api.open-meteo.com",
	KeyMediaURL:         "http://localhost:8096",
	KeyMediaAPIKey:      "",
	KeyFilterURL:        "http://localhost:3000",
	KeyFilterUser:       "admin",
	KeyFilterPass:       "",
	KeyPingHost1:        "192.168.1.1",
	KeyPingLabel1:       "Router",
	KeyPingHost2:        "1.1.1.1:53",
	KeyPingLabel2:       "Internet",
	KeyHiddenContainers: "",
	KeyTheme:            "Default",
	KeyFont:             "Monospace",
	KeyAppTitle:         "BASEMENT HQ",
	KeyLogoPath:         "",
}

// secretKeys are masked whenever entries are shown back to the operator.
var secretKeys = map[string]bool{
	KeyMediaAPIKey: true,
	KeyFilterPass:  true,
}

// IsSecret reports whether the key holds a credential.
func IsSecret(key string) bool {
	return secretKeys[key]
}

// Mask hides all but the last four characters of a secret value.
func Mask(key, value string) string {
	if !IsSecret(key) || value == "" {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

// Value returns the stored value for key or its documented default.
func (s *Store) Value(key string) string {
	return s.Get(key, Defaults[key])
}
