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
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments.
//
// Flags:
//
//	-a server listen address host:port
//	-server address the client talks to
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g. "1h")
//	-encryption-key hex-encoded 32-byte field key
//	-request-timeout request timeout (e.g. "30s")
//	-summary-provider openai or gemini
//	-connect-timeout voice connect timeout (e.g. "20s")
//	-input-device capture device override
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-brainstorm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var adapterAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var encryptionKey string
	var requestTimeout time.Duration
	var summaryProvider string
	var connectTimeout time.Duration
	var inputDevice string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&adapterAddress, "server", "", "Server address for the client")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&encryptionKey, "encryption-key", "", "Hex-encoded 32-byte encryption key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&summaryProvider, "summary-provider", "", "Summary provider: openai or gemini")
	fs.DurationVar(&connectTimeout, "connect-timeout", 0, "Voice connect timeout (e.g., 20s)")
	fs.StringVar(&inputDevice, "input-device", "", "Microphone device")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			EncryptionKey: encryptionKey,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		AI: AI{
			SummaryProvider: summaryProvider,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Voice: Voice{
			ConnectTimeout: connectTimeout,
			InputDevice:    inputDevice,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or "" when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP.
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

	if host != "" && !strings.EqualFold(host, "localhost") && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
