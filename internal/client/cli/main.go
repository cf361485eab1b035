package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
)

// Run starts an interactive session against the server named in cfg.
func Run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) {
	c := client.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	a := NewApp(c, in, out)

	fmt.Fprintf(out, "taskkeeper client, server %s (type 'help' for commands)\n", cfg.ServerEndpointAddr)
	runREPL(ctx, a, a.status, a.reader, out)
}
