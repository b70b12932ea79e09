package mysql_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mysqlrepo "hostel_pms/internal/storage/mysql"
)

func TestParseDSN_ForcesTimeHandling(t *testing.T) {
	cases := map[string]string{
		"bare":       "hostel:secret@tcp(db:3306)/hostel",
		"local zone": "hostel:secret@tcp(db:3306)/hostel?parseTime=false&loc=Local",
	}
	for name, dsn := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := mysqlrepo.ParseDSN(dsn)
			require.NoError(t, err)
			assert.True(t, cfg.ParseTime)
			assert.Equal(t, time.UTC, cfg.Loc)
			assert.Equal(t, "hostel", cfg.User)
			assert.Equal(t, "db:3306", cfg.Addr)
			assert.Equal(t, "hostel", cfg.DBName)
		})
	}
}

func TestOpen(t *testing.T) {
	db, err := mysqlrepo.Open("hostel:secret@tcp(127.0.0.1:1)/hostel")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = mysqlrepo.Open("not a dsn")
	assert.Error(t, err)
}
