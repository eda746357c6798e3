// Package config provides configuration parsing for vtree projects.
//
// The configuration is stored in vtree.json next to the tree files it
// describes. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "addr": "localhost:7070",
//	  "title": "vtree",
//	  "logLevel": "info",
//	  "logFormat": "text",
//	  "modules": ["class", "props", "attributes", "style", "dataset", "eventlisteners", "metrics"],
//	  "watch": ["page.yaml"],
//	  "metrics": {
//	    "namespace": "vtree",
//	    "path": "/metrics"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromDir(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	logger := cfg.Logger(os.Stderr)
package config
