// Package iomock provides gomock mocks for the io interfaces used in tests.
package iomock

//go:generate go tool mockgen -destination=writer.go -package=iomock io Writer
