package hclgraph

import "github.com/hashicorp/hcl/v2"

// file is the root schema of a graph description: zero or more node blocks.
type file struct {
	Nodes []nodeBlock `hcl:"node,block"`
}

// nodeBlock is one `node "type" "name" { ... }` declaration.
//
//	node "http_check" "homepage" {
//	  inputs  = ["base_url"]
//	  outputs = ["status"]
//	  arguments {
//	    timeout_seconds = 5
//	  }
//	}
type nodeBlock struct {
	Type    string   `hcl:"type,label"`
	Name    string   `hcl:"name,label"`
	Inputs  []string `hcl:"inputs,optional"`
	Outputs []string `hcl:"outputs,optional"`
	Remain  hcl.Body `hcl:",remain"`
}
