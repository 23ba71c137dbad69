package observability

func schemaDashboardURL() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"region": map[string]any{"type": "string"},
		},
	}
}

func schemaLogsInfo() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_arn": map[string]any{"type": "string"},
			"region":    map[string]any{"type": "string"},
		},
		"required": []string{"agent_arn"},
	}
}

func schemaRecentLogs() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_arn":  map[string]any{"type": "string"},
			"hours_back": map[string]any{"type": "integer"},
			"limit":      map[string]any{"type": "integer"},
			"region":     map[string]any{"type": "string"},
		},
		"required": []string{"agent_arn"},
	}
}
