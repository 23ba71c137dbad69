package codegen

func schemaGenerateStrandsAgent() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_name":    map[string]any{"type": "string"},
			"system_prompt": map[string]any{"type": "string"},
			"tools": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Built-in strands_tools names, for example retrieve or current_time",
			},
			"custom_tools": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"parameters": map[string]any{
							"type":        "string",
							"description": "Python parameter list, defaults to query: str",
						},
						"code": map[string]any{
							"type":        "string",
							"description": "Unindented function body",
						},
					},
				},
			},
			"include_memory": map[string]any{"type": "boolean"},
			"memory_namespaces": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"include_kb":      map[string]any{"type": "boolean"},
			"include_gateway": map[string]any{"type": "boolean"},
			"model_id":        map[string]any{"type": "string"},
			"temperature":     map[string]any{"type": "number"},
			"region":          map[string]any{"type": "string"},
		},
		"required": []string{"agent_name", "system_prompt"},
	}
}

func schemaGenerateRuntimeAgent() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_name":     map[string]any{"type": "string"},
			"system_prompt":  map[string]any{"type": "string"},
			"include_memory": map[string]any{"type": "boolean"},
			"include_gateway": map[string]any{
				"type": "boolean",
			},
			"include_kb": map[string]any{"type": "boolean"},
			"memory_namespaces": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"additional_tools": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"model_id":    map[string]any{"type": "string"},
			"temperature": map[string]any{"type": "number"},
			"region":      map[string]any{"type": "string"},
		},
		"required": []string{"agent_name", "system_prompt"},
	}
}
