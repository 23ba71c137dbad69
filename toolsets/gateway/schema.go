package gateway

func schemaGatewayCreate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":                  map[string]any{"type": "string"},
			"role_arn":              map[string]any{"type": "string"},
			"cognito_client_id":     map[string]any{"type": "string"},
			"cognito_discovery_url": map[string]any{"type": "string"},
			"protocol_type":         map[string]any{"type": "string"},
			"authorizer_type":       map[string]any{"type": "string"},
			"description":           map[string]any{"type": "string"},
			"region":                map[string]any{"type": "string"},
		},
		"required": []string{"name", "role_arn", "cognito_client_id", "cognito_discovery_url"},
	}
}

func schemaGatewayAddLambdaTarget() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"gateway_id":  map[string]any{"type": "string"},
			"target_name": map[string]any{"type": "string"},
			"lambda_arn":  map[string]any{"type": "string"},
			"tool_schema": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"inputSchema": map[string]any{"type": "object"},
					},
				},
			},
			"target_description": map[string]any{"type": "string"},
			"region":             map[string]any{"type": "string"},
		},
		"required": []string{"gateway_id", "target_name", "lambda_arn", "tool_schema"},
	}
}

func schemaGatewayListTargets() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"gateway_id": map[string]any{"type": "string"},
			"region":     map[string]any{"type": "string"},
		},
		"required": []string{"gateway_id"},
	}
}

func schemaGatewayDeleteTarget() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"gateway_id": map[string]any{"type": "string"},
			"target_id":  map[string]any{"type": "string"},
			"region":     map[string]any{"type": "string"},
		},
		"required": []string{"gateway_id", "target_id"},
	}
}

func schemaGatewayDelete() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"gateway_id": map[string]any{"type": "string"},
			"region":     map[string]any{"type": "string"},
		},
		"required": []string{"gateway_id"},
	}
}
