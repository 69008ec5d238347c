// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing of the configuration
// files. Two versions are tracked here, namely the configuration file
// and the database schema. Versions are checked before the rest of
// settings are used, so an old configuration file (or a database
// which was initialized by an older binary) is reported clearly.
package vers

import (
	"fmt"

	"github.com/momeni/sitetrack/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of the configuration file and the
// database schema. It is embedded with inline format in the Config
// struct of the config package.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema versions
// which are used for detecting their relevant formats.
// Each binary only supports the latest version which is known to it.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration settings version which
// is stored in the `vc` Config instance is not supported by the given
// major and minor version arguments. That is, stored major version
// must match with the major argument and the stored minor version must
// be at most equal with the given minor version (not newer than it).
// The database schema version must be equal to the db argument.
func (vc *Config) Validate(major, minor uint, db model.SemVer) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	if d := vc.Versions.Database; d != db {
		return fmt.Errorf(
			"unexpected database schema version: %s, expected %s", d, db,
		)
	}
	return nil
}
