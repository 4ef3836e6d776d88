// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-request-timeout request timeout (e.g. "30s")
//	-shutdown-timeout graceful shutdown timeout (e.g. "10s")
//	-secret FeatBit environment secret
//	-streaming streaming service URI
//	-event event service URI
//	-start-wait client start wait time (e.g. "5s")
//	-offline evaluate from local data only
//	-bootstrap path to FeatBit JSON data
//	-log-level zerolog level name
//	-log-console human-readable logs
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress   NetAddress
		requestTimeout  time.Duration
		shutdownTimeout time.Duration
		cfg             StructuredConfig
	)

	fs := flag.NewFlagSet("featbit-eval", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g. 10s)")
	fs.StringVar(&cfg.SDK.EnvSecret, "secret", "", "FeatBit environment secret")
	fs.StringVar(&cfg.SDK.StreamingURI, "streaming", "", "Streaming service URI")
	fs.StringVar(&cfg.SDK.EventURI, "event", "", "Event service URI")
	fs.DurationVar(&cfg.SDK.StartWaitTime, "start-wait", 0, "Client start wait time (e.g. 5s)")
	fs.BoolVar(&cfg.SDK.Offline, "offline", false, "Evaluate from local data only")
	fs.StringVar(&cfg.SDK.BootstrapFile, "bootstrap", "", "Path to FeatBit JSON data")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.BoolVar(&cfg.Log.Console, "log-console", false, "Human-readable logs")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server = Server{
		HTTPAddress:     serverAddress.String(),
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
	}
	return &cfg, nil
}

// String returns a canonical host:port string. An unset address is empty.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be "localhost", an IP address, or
// empty for all interfaces.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
