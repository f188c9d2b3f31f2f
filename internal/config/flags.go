// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line flags from args into a fresh config.
//
// Flags:
//
//	-a local listen address in format [host]:[port]
//	-u remote WanderLust base URL
//	-d SQLite DSN
//	-cache-dir response cache directory
//	-c/-config json file path with configs
//	-user user id of the traveller
//	-token API bearer token
//	-log-level log level
//	-headless run without the terminal dashboard
//	-request-timeout outbound request timeout (e.g., "10s")
//	-sync-interval periodic drain interval (e.g., "30s")
//	-probe-interval connectivity probe interval (e.g., "5s")
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		listenAddress  NetAddress
		baseURL        string
		databaseDSN    string
		cacheDir       string
		jsonConfigPath string
		userID         string
		apiToken       string
		logLevel       string
		headless       bool
		requestTimeout time.Duration
		syncInterval   time.Duration
		probeInterval  time.Duration
	)

	fs.Var(&listenAddress, "a", "Local listen address host:port")
	fs.StringVar(&baseURL, "u", "", "Remote WanderLust base URL")
	fs.StringVar(&databaseDSN, "d", "", "SQLite DSN")
	fs.StringVar(&cacheDir, "cache-dir", "", "Response cache directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&userID, "user", "", "Traveller user id")
	fs.StringVar(&apiToken, "token", "", "API bearer token")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&headless, "headless", false, "Run without the terminal dashboard")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 10s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 30s)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 5s)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			UserID:   userID,
			APIToken: apiToken,
			LogLevel: logLevel,
			Headless: headless,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Cache: Cache{Dir: cacheDir},
		},
		Server: Server{
			HTTPAddress: listenAddress.String(),
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			ProbeInterval: probeInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
