package runtime

func schemaRuntimeConfigure() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entrypoint":            map[string]any{"type": "string"},
			"agent_name":            map[string]any{"type": "string"},
			"execution_role":        map[string]any{"type": "string"},
			"cognito_client_id":     map[string]any{"type": "string"},
			"cognito_discovery_url": map[string]any{"type": "string"},
			"auto_create_ecr":       map[string]any{"type": "boolean"},
			"memory_mode":           map[string]any{"type": "string"},
			"requirements_file":     map[string]any{"type": "string"},
			"region":                map[string]any{"type": "string"},
		},
		"required": []string{"entrypoint", "agent_name", "execution_role", "cognito_client_id", "cognito_discovery_url"},
	}
}

func schemaRuntimeLaunch() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"env_vars":                map[string]any{"type": "object"},
			"auto_update_on_conflict": map[string]any{"type": "boolean"},
			"region":                  map[string]any{"type": "string"},
		},
		"required": []string{"env_vars"},
	}
}

func schemaRuntimeStatus() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"region": map[string]any{"type": "string"},
		},
	}
}

func schemaRuntimeInvoke() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"payload":      map[string]any{"type": "object"},
			"bearer_token": map[string]any{"type": "string"},
			"region":       map[string]any{"type": "string"},
		},
		"required": []string{"payload", "bearer_token"},
	}
}

func schemaRuntimeDelete() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"region": map[string]any{"type": "string"},
		},
	}
}
