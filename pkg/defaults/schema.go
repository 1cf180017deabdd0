// Package defaults applies deployment overrides on top of what the modules
// registered at startup.
package defaults

import (
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
)

// ApplyPermissionSchema loads the file at PERMISSION_SCHEMA_PATH, if set,
// and lets its groups override the module defaults. It must run after every
// module has been loaded.
func ApplyPermissionSchema(app application.Application, conf *configuration.Configuration, logger logrus.FieldLogger) error {
	if conf.PermissionSchemaPath == "" {
		return nil
	}
	schema, err := application.LoadPermissionSchemaFile(conf.PermissionSchemaPath)
	if err != nil {
		return errors.Wrap(err, "permission schema override")
	}
	app.PermissionSchema().Override(schema)
	logger.WithFields(logrus.Fields{
		"path":   conf.PermissionSchemaPath,
		"groups": len(schema.Groups),
	}).Info("permission schema override applied")
	return nil
}
