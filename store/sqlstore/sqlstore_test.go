package sqlstore

import (
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilesnake/engine/store/testsuite"
)

func mustExec(db *sql.DB, sq string) {
	if _, err := db.Exec(sq); err != nil {
		panic(err)
	}
}

func TestSQLStore(t *testing.T) {
	url := os.Getenv("SNAKE_TEST_POSTGRES")
	if url == "" {
		t.Skip("SNAKE_TEST_POSTGRES not set")
	}
	s, err := NewSQLStore(url)
	require.NoError(t, err)
	defer s.Close()

	testsuite.Suite(t, s, func() {
		mustExec(s.db, "TRUNCATE games")
		mustExec(s.db, "TRUNCATE game_frames")
	})
}
