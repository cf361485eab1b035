package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

var serverFlags = []string{
	"-a", "-k", "-f", "-n", "-d", "-u", "-p", "-b", "-g", "-e", "-o",
	"-w", "-m", "-x", "-t", "-l", "-L", "-r",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., "127.0.0.1:8080")
//	-k string   snapshot backend: file, postgres or s3
//	-f string   snapshot file path
//	-n string   snapshot name (postgres backend)
//	-d string   PostgreSQL DSN
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-o string   S3 object key
//	-w int      bcrypt cost
//	-m int      max in-flight requests, 0 for unlimited
//	-x bool     strict update (PUT of an unknown id is 404)
//	-t int      shutdown timeout, seconds
//	-l string   log level
//	-L string   log file
//	-r string   allowed CORS origin prefix
//
// Only the flags listed above are picked out of os.Args (see
// flagx.FilterArgs), so the client and the JSON loader can share the
// command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags, "-x")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.SnapshotBackend, "k", config.SnapshotBackend, "snapshot backend (file, postgres, s3)")
	fs.StringVar(&config.SnapshotPath, "f", config.SnapshotPath, "snapshot file path")
	fs.StringVar(&config.SnapshotName, "n", config.SnapshotName, "snapshot name")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3ObjectKey, "o", config.S3ObjectKey, "S3 object key")

	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.MaxInFlight, "m", config.MaxInFlight, "max in-flight requests")
	fs.BoolVar(&config.StrictUpdate, "x", config.StrictUpdate, "reject updates of unknown ids")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "L", config.LogFile, "log file")
	fs.StringVar(&config.AllowedOriginPrefix, "r", config.AllowedOriginPrefix, "allowed CORS origin prefix")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
