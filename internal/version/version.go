package version

// Version es la versión actual de diffclip.
// Se sobrescribe en el build con -ldflags "-X .../internal/version.Version=x.y.z"
var Version = "0.3.0"

// FullVersion retorna la versión con el prefijo v
func FullVersion() string {
	return "v" + Version
}
