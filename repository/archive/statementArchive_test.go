package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatementKey(t *testing.T) {
	at := time.Date(2021, 4, 11, 10, 39, 5, 0, time.FixedZone("EAT", 3*3600))
	require.Equal(t, "statements/rental-42-20210411T073905Z.html", StatementKey(42, at))
}
