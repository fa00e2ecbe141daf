package session

import (
	"io"
	"os"
	"testing"

	"nestview-web/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger(io.Discard, "ERROR")
	os.Exit(m.Run())
}
