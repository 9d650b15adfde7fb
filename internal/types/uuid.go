package types

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex user_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortID returns a short, URL-safe public identifier. Used for
// gallery image public IDs where the full ULID would leak ordering.
func GenerateShortID() string {
	once.Do(initializeSID)
	id, err := sidGenerator.Generate()
	if err != nil {
		return GenerateUUID()
	}
	return id
}

const (
	UUID_PREFIX_USER      = "user"
	UUID_PREFIX_EVENT     = "event"
	UUID_PREFIX_TEAM      = "team"
	UUID_PREFIX_IMAGE     = "img"
	UUID_PREFIX_MESSAGE   = "msg"
	UUID_PREFIX_STATEMENT = "stmt"
	UUID_PREFIX_INVOICE   = "inv"
)
