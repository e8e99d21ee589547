package server

import (
	"fmt"

	"github.com/tilesnake/engine/store"
	"github.com/tilesnake/engine/store/filestore"
	"github.com/tilesnake/engine/store/redisstore"
	"github.com/tilesnake/engine/store/sqlstore"
)

// OpenStore returns the named backend. args is the directory for file, and
// the connection URL for redis and sql.
func OpenStore(backend, args string) (store.Store, error) {
	switch backend {
	case "inmem":
		return store.InMemStore(), nil
	case "file":
		return filestore.NewFileStore(args), nil
	case "redis":
		return redisstore.NewStore(args)
	case "sql":
		return sqlstore.NewSQLStore(args)
	default:
		return nil, fmt.Errorf("invalid backend %q", backend)
	}
}
