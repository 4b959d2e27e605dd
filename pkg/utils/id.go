package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength     = 12
)

// GenerateID gera o identificador curto usado como chave primária dos registros.
// Alfabeto e tamanho são fixos, então MustGenerate não entra em pânico.
func GenerateID() string {
	return gonanoid.MustGenerate(idCharacters, idLength)
}
