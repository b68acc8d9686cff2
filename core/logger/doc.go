// Package logger provides slog attribute helpers shared across the module.
//
// Helpers follow the empty-Attr pattern: a nil error, nil URL, or nil value
// yields an empty attribute that slog drops silently, so call sites need no
// nil checks.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/netkit/core/logger"
//
//	log.Info("request completed",
//		logger.RequestID(d.ID),
//		logger.URL(d.URL),
//		logger.Method(d.Method),
//		logger.StatusCode(d.StatusCode),
//		logger.Elapsed(start),
//	)
//
//	log.Error("listener failed",
//		logger.Event("onBeforeRequest"),
//		logger.Error(err),
//		logger.Component("webrequest"),
//	)
//
// # Grouping
//
// Related attributes can be nested under one key:
//
//	log.Info("scheme resolved",
//		logger.Group("protocol",
//			logger.Scheme(u.Scheme),
//			logger.Host(u.Host),
//		),
//	)
package logger
