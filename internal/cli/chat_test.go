package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestLineChatConfig(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(bytes.NewBufferString("hello\n"))

	cfg := lineChatConfig(cmd)

	assert.Empty(t, cfg.HistoryFile)
	assert.Same(t, &out, cfg.Stdout)
	assert.NotNil(t, cfg.Stdin)
}
