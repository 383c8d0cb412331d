// Package logger provides structured logging for beankit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. The container logs bean registration,
// instantiation and destruction through it.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("di")
//	log.Debug("bean instantiated", logger.Fields(logger.FieldBeanID, "shapeRunner"))
package logger
