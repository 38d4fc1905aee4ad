package main

import (
	"fmt"
	"time"

	echoapi "github.com/trezcool/masomo-rollover/apps/api/echo"
	"github.com/trezcool/masomo-rollover/core"
)

const defaultTokenTTL = 12 * time.Hour

// printToken signs an administrator token with the reference server's secret key.
func (cli *commandLine) printToken(ttl time.Duration) error {
	if cli.conf.Server.SecretKey == "" {
		return core.NewArgumentError("no server secret key configured")
	}
	token, err := echoapi.GenerateToken(cli.conf.Server.SecretKey, echoapi.GetAdminClaims(cli.conf, ttl))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
