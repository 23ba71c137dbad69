package observability

// Script templates. Placeholders are filled with Python literals
// produced by internal/script, so caller-supplied values can never
// break out of the generated source. The strftime format in the logs
// info template doubles its percent signs so fmt.Sprintf leaves them
// alone.

const dashboardURLScript = `#!/usr/bin/env python3
"""
Script to get CloudWatch GenAI Observability dashboard URL.
"""

# Build dashboard URL
region = %s
dashboard_url = f"https://console.aws.amazon.com/cloudwatch/home?region={region}#gen-ai-observability/agent-core"

print("CloudWatch GenAI Observability Dashboard")
print("=" * 80)
print(f"\nDashboard URL: {dashboard_url}")
print(f"Region: {region}")
print("\nFeatures:")
print("  - Agent performance metrics")
print("  - Request traces and spans")
print("  - Session history")
print("  - Error rates and patterns")
print("  - Tool invocation details")
print("\nOpen this URL in your browser to view the dashboard")
`

const logsInfoScript = `#!/usr/bin/env python3
"""
Script to get CloudWatch log group information for agent logs.
"""

import json
from datetime import datetime

# Load configuration
with open('runtime_config.json') as f:
    runtime_config = json.load(f)

agent_arn = runtime_config["agent_arn"]
region = %s

# Extract agent ID from ARN
agent_id = agent_arn.split('/')[-1]

# Build log group name
log_group = f"/aws/bedrock-agentcore/runtimes/{agent_id}-DEFAULT"

# Get current date for log stream prefix
current_date = datetime.now().strftime("%%Y/%%m/%%d")

# Build CLI commands
tail_command = f'aws logs tail {log_group} --log-stream-name-prefix "{current_date}/[runtime-logs]" --follow'
recent_command = f'aws logs tail {log_group} --log-stream-name-prefix "{current_date}/[runtime-logs]" --since 1h'

print("CloudWatch Logs Information")
print("=" * 80)
print(f"\nAgent ARN: {agent_arn}")
print(f"Agent ID: {agent_id}")
print(f"Log Group: {log_group}")
print(f"Region: {region}")
print("\nCLI Commands:")
print(f"\nTail logs (real-time):")
print(f"  {tail_command}")
print(f"\nView recent logs (last hour):")
print(f"  {recent_command}")
`

const recentLogsScript = `#!/usr/bin/env python3
"""
Script to retrieve recent logs from CloudWatch.
"""

import json
import boto3
from datetime import datetime, timedelta

# Load configuration
with open('runtime_config.json') as f:
    runtime_config = json.load(f)

agent_arn = runtime_config["agent_arn"]

# Extract agent ID from ARN
agent_id = agent_arn.split('/')[-1]
log_group = f"/aws/bedrock-agentcore/runtimes/{agent_id}-DEFAULT"

# Initialize CloudWatch Logs client
logs_client = boto3.client('logs', region_name=%s)

# Calculate start time
start_time = int((datetime.now() - timedelta(hours=%d)).timestamp() * 1000)

try:
    # Fetch log events
    print(f"Retrieving logs from {log_group}...")
    response = logs_client.filter_log_events(
        logGroupName=log_group,
        limit=%d,
        startTime=start_time
    )

    events = response.get('events', [])

    print(f"\n✓ Retrieved {len(events)} log events from the last %d hour(s)\n")
    print("=" * 80)

    for event in events:
        timestamp = datetime.fromtimestamp(event['timestamp'] / 1000).isoformat()
        message = event['message']
        print(f"[{timestamp}] {message}")
        print("-" * 80)

except logs_client.exceptions.ResourceNotFoundException:
    print(f"✗ Log group not found: {log_group}")
    print("  Agent may not have been invoked yet, or logs may not be available.")
except Exception as e:
    print(f"✗ Error retrieving logs: {str(e)}")
`
