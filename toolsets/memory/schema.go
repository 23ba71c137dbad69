package memory

func schemaMemoryCreate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"strategies": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
						"namespaces": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
			"description": map[string]any{"type": "string"},
			"region":      map[string]any{"type": "string"},
		},
		"required": []string{"name", "strategies"},
	}
}

func schemaMemoryCreateEvent() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"memory_id":  map[string]any{"type": "string"},
			"actor_id":   map[string]any{"type": "string"},
			"session_id": map[string]any{"type": "string"},
			"messages": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"role":    map[string]any{"type": "string"},
						"content": map[string]any{"type": "string"},
					},
				},
			},
			"region": map[string]any{"type": "string"},
		},
		"required": []string{"memory_id", "actor_id", "session_id", "messages"},
	}
}

func schemaMemoryRetrieve() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"memory_id":       map[string]any{"type": "string"},
			"namespace":       map[string]any{"type": "string"},
			"query":           map[string]any{"type": "string"},
			"top_k":           map[string]any{"type": "integer"},
			"relevance_score": map[string]any{"type": "number"},
			"region":          map[string]any{"type": "string"},
		},
		"required": []string{"memory_id", "namespace", "query"},
	}
}

func schemaMemoryDelete() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"memory_id": map[string]any{"type": "string"},
			"region":    map[string]any{"type": "string"},
		},
		"required": []string{"memory_id"},
	}
}
