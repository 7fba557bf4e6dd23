// Package guard switches the binaries into test mode when imported by tests,
// so calling main never dials Postgres or Redis.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ANIMEAUX_TEST_MODE") == "" {
			_ = os.Setenv("ANIMEAUX_TEST_MODE", "1")
		}
	})
}
