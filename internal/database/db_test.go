package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	got := dsn("elfogon", "secret", "db", "3306", "reservas")
	assert.Equal(t, "elfogon:secret@tcp(db:3306)/reservas?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", got)
}

func TestDSNWithoutPassword(t *testing.T) {
	got := dsn("root", "", "localhost", "3306", "reservas")
	assert.Equal(t, "root@tcp(localhost:3306)/reservas?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", got)
}
