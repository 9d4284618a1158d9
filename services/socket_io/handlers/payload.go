package handlers

// Inbound events carry a single JSON object argument. socket.io
// decodes it into a map; missing or non-string fields read as "".
func eventPayload(args ...interface{}) map[string]interface{} {
	if len(args) < 1 {
		return nil
	}
	payload, _ := args[0].(map[string]interface{})
	return payload
}

func stringField(payload map[string]interface{}, key string) string {
	if payload == nil {
		return ""
	}
	value, _ := payload[key].(string)
	return value
}
