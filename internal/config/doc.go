// Package config loads mvvm.json, the configuration of the mvvm command.
//
// # Configuration File Structure
//
//	{
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "reactive": {
//	    "alwaysNotify": false,
//	    "recover": true,
//	    "maxNotifyDepth": 64,
//	    "onExceeded": "throttle",
//	    "debug": false
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "mvvm"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
//	obs := reactive.NewObserver(cfg.ObserverOptions(logger)...)
package config
