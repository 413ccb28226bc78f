package csvimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/csvimport"
)

func TestReadClients_ColumnasEnCualquierOrden(t *testing.T) {
	data := "Email,Phone,Name\n" +
		"jane@example.com,555-0100,Jane Doe\n" +
		"john@example.com,,John Roe\n"
	clients, rowErrs, err := csvimport.ReadClients(strings.NewReader(data), "")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, clients, 2)
	assert.Equal(t, "Jane Doe", clients[0].Name)
	require.NotNil(t, clients[0].Phone)
	assert.Equal(t, "555-0100", *clients[0].Phone)
	assert.Nil(t, clients[1].Phone, "phone vacío se importa como null")
}

func TestReadClients_FilasInvalidasNoAbortan(t *testing.T) {
	data := "name,email\n" +
		"Jane,jane@example.com\n" +
		",missing@example.com\n" +
		"Bad,not-an-email\n"
	clients, rowErrs, err := csvimport.ReadClients(strings.NewReader(data), csvimport.CharsetUTF8)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.ErrorIs(t, rowErrs[0].Err, domain.ErrInvalidInput)
	assert.Equal(t, 4, rowErrs[1].Line)
}

func TestReadClients_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("name,email\nJosé Núñez,jose@example.com\n")
	require.NoError(t, err)

	clients, _, err := csvimport.ReadClients(bytes.NewBufferString(encoded), csvimport.CharsetLatin1)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "José Núñez", clients[0].Name)
}

func TestReadClients_EncabezadoIncompleto(t *testing.T) {
	_, _, err := csvimport.ReadClients(strings.NewReader("name,phone\nJane,1\n"), "")
	assert.Error(t, err)

	_, _, err = csvimport.ReadClients(strings.NewReader(""), "")
	assert.Error(t, err)

	_, _, err = csvimport.ReadClients(strings.NewReader("name,email\n"), "utf-16")
	assert.Error(t, err)
}
