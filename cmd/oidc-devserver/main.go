// Command oidc-devserver serves a bearer-protected echo endpoint, for trying
// tokens from a real identity provider against each HTTP adapter.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/binkhq/go-oidc-bearer/config"
	"github.com/binkhq/go-oidc-bearer/core"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], err)
		os.Exit(1)
	}
}

var cmd = cobra.Command{
	Use:          "oidc-devserver",
	Short:        "Serve POST /echo behind OIDC bearer authentication",
	SilenceUsage: true,
	RunE:         run,
}

var ( // flags
	addr      string
	framework string
	scope     string
	tenantID  string
	audience  string
	metrics   bool
	debug     bool
)

func init() {
	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0:6502", "Address to listen on")
	cmd.Flags().StringVar(&framework, "framework", frameworkHTTP, "HTTP stack to serve with: http, gin or echo")
	cmd.Flags().StringVar(&scope, "scope", "transactions:write", "Scope required by POST /echo")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Azure AD tenant ID; when empty the OIDC_* environment variables are used")
	cmd.Flags().StringVar(&audience, "audience", "", "Audience to expect with --tenant")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")
}

func run(cmd *cobra.Command, _ []string) error {
	logger := logrus.New()
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := providerConfig()
	if err != nil {
		return err
	}

	registry, err := core.NewRegistry(core.WithRegistryLogger(core.NewLogrusLogger(logger)))
	if err != nil {
		return err
	}

	auth, err := core.New(cmd.Context(), registry, cfg, core.WithLogger(core.NewLogrusLogger(logger)))
	if err != nil {
		return fmt.Errorf("could not set up authentication: %w", err)
	}

	reg := prometheus.NewRegistry()
	handler, err := newHandler(framework, auth, scope, reg)
	if err != nil {
		return err
	}

	if metrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/", handler)
		handler = mux
	}

	logger.WithFields(logrus.Fields{
		"addr":      addr,
		"framework": framework,
		"issuer":    cfg.Issuer,
	}).Info("serving")

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return cmd.Context()
		},
	}
	return srv.ListenAndServe()
}

func providerConfig() (core.ProviderConfig, error) {
	if tenantID == "" {
		return config.Load()
	}
	if audience == "" {
		return core.ProviderConfig{}, errors.New("--audience is required with --tenant")
	}
	return config.AzureAD(tenantID, audience), nil
}
