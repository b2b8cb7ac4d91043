// Package config loads the widgethook.json configuration of a widget host.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "address": ":8080",
//	    "readBufferSize": 4096,
//	    "writeBufferSize": 4096,
//	    "maxMessageSize": 65536,
//	    "eventQueue": 256,
//	    "shutdownTimeout": "10s"
//	  },
//	  "attributes": {
//	    "component": "data-component",
//	    "options": "data-options"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "widgethook",
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "widgethook"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// Every field is optional. A missing file yields the defaults.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Server.Address)
package config
