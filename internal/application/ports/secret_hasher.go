package ports

// SecretHasher puerto para derivar y verificar hashes de contraseñas.
// La aplicación nunca guarda ni compara contraseñas en claro.
type SecretHasher interface {
	Hash(plain string) (string, error)
	// Verify informa si plain corresponde a hash. Un hash corrupto cuenta como no coincidente.
	Verify(plain, hash string) bool
}
