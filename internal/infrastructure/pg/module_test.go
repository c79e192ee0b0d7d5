package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "keypad", Password: "p a's", DBName: "keypad", SSLMode: "disable"}

	assert.Equal(t,
		`host='db' port='5432' user='keypad' password='p a\'s' dbname='keypad' sslmode='disable'`,
		cfg.DSN())
}

func TestOpen_Pool(t *testing.T) {
	conn, err := open(&Config{Host: "localhost", Port: "5432", MaxOpenConns: 7, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	defer conn.Close()

	// sql.Open не подключается, поэтому пул проверяется без сервера
	assert.Equal(t, 7, conn.Stats().MaxOpenConnections)
}
