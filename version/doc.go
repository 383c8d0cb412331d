// Package version exposes build metadata of beankit binaries.
//
// Values are stamped at link time and completed from debug.ReadBuildInfo:
//
//	go build -ldflags "-X github.com/kbukum/beankit/version.Version=1.0.0" ./cmd/beandemo
package version
