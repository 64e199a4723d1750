package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera identificadores curtos usados em execuções do agendador e nomes de arquivos
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
