package codegen

// Agent code fragments assembled by buildAgentCode. Data placeholders
// are filled with Python literals produced by internal/script; custom
// tool bodies are emitted verbatim because they are code by contract.

const standaloneHeader = `#!/usr/bin/env python3
"""
Strands agent: %s

Standalone agent that talks to Bedrock directly.
"""

`

const runtimeHeader = `#!/usr/bin/env python3
"""
Strands agent: %s

Entrypoint for deployment to AgentCore Runtime.
"""

`

const agentConfigBlock = `REGION = %s
MODEL_ID = %s
TEMPERATURE = %s

SYSTEM_PROMPT = %s
`

const configLoaderBlock = `
def load_json_config(path):
    """Read a config file written by the setup scripts, or return {}."""
    try:
        with open(path) as f:
            return json.load(f)
    except FileNotFoundError:
        return {}
`

const memoryConfigStandalone = `
# AgentCore Memory integration
MEMORY_ID = os.environ.get('MEMORY_ID') or load_json_config('memory_config.json').get('memory_id')
`

const memoryConfigRuntime = `
# AgentCore Memory integration, wired through launch env_vars
MEMORY_ID = os.environ.get('MEMORY_ID')
`

const memoryNamespacesLine = "MEMORY_NAMESPACES = %s\n"

const memoryHelpers = `
memory_client = MemoryClient(region_name=REGION) if MEMORY_ID else None
if memory_client is None:
    print("⚠️  MEMORY_ID is not set, memory features are disabled")

def load_customer_context(actor_id, query):
    """Collect relevant memories for the customer across all namespaces."""
    if memory_client is None:
        return ""
    sections = []
    for namespace in MEMORY_NAMESPACES:
        try:
            memories = memory_client.retrieve_memories(
                memory_id=MEMORY_ID,
                namespace=f"app/{actor_id}/{namespace}",
                query=query,
                top_k=3
            )
        except Exception as e:
            print(f"⚠️  Memory retrieval failed for {namespace}: {e}")
            continue
        for memory in memories:
            content = memory.get('content', {})
            text = content.get('text') if isinstance(content, dict) else str(content)
            if text:
                sections.append(f"[{namespace}] {text}")
    return "\n".join(sections)

def save_conversation(actor_id, session_id, user_input, response):
    """Store the finished turn so the memory strategies can extract from it."""
    if memory_client is None:
        return
    try:
        memory_client.create_event(
            memory_id=MEMORY_ID,
            actor_id=actor_id,
            session_id=session_id,
            messages=[(user_input, "USER"), (response, "ASSISTANT")]
        )
    except Exception as e:
        print(f"⚠️  Failed to store conversation: {e}")
`

const kbBlockStandalone = `
# Knowledge Base integration, used by the retrieve tool
if not os.environ.get('KNOWLEDGE_BASE_ID'):
    kb_id = load_json_config('kb_config.json').get('knowledge_base_id')
    if kb_id:
        os.environ['KNOWLEDGE_BASE_ID'] = kb_id
    else:
        print("⚠️  KNOWLEDGE_BASE_ID is not set, the retrieve tool will fail")
`

const kbBlockRuntime = `
# Knowledge Base integration, wired through launch env_vars
if not os.environ.get('KNOWLEDGE_BASE_ID'):
    print("⚠️  KNOWLEDGE_BASE_ID is not set, the retrieve tool will fail")
`

const gatewayConfigStandalone = `
# Gateway MCP tools
cognito_config = load_json_config('cognito_config.json')
GATEWAY_URL = os.environ.get('GATEWAY_URL') or load_json_config('gateway_config.json').get('gateway_url')
COGNITO_CLIENT_ID = os.environ.get('COGNITO_CLIENT_ID') or cognito_config.get('client_id')
COGNITO_CLIENT_SECRET = os.environ.get('COGNITO_CLIENT_SECRET') or cognito_config.get('client_secret')
COGNITO_DISCOVERY_URL = os.environ.get('COGNITO_DISCOVERY_URL') or cognito_config.get('discovery_url')
`

const gatewayConfigRuntime = `
# Gateway MCP tools, wired through launch env_vars
GATEWAY_URL = os.environ.get('GATEWAY_URL')
COGNITO_CLIENT_ID = os.environ.get('COGNITO_CLIENT_ID')
COGNITO_CLIENT_SECRET = os.environ.get('COGNITO_CLIENT_SECRET')
COGNITO_DISCOVERY_URL = os.environ.get('COGNITO_DISCOVERY_URL')
`

const gatewayHelpers = `
def fetch_gateway_token():
    """Exchange Cognito client credentials for a gateway access token."""
    discovery = requests.get(COGNITO_DISCOVERY_URL, timeout=10).json()
    response = requests.post(
        discovery['token_endpoint'],
        data={
            'grant_type': 'client_credentials',
            'client_id': COGNITO_CLIENT_ID,
            'client_secret': COGNITO_CLIENT_SECRET,
            'scope': 'agentcore-gateway/read agentcore-gateway/write'
        },
        timeout=10
    )
    response.raise_for_status()
    return response.json()['access_token']

def open_gateway_client():
    """Create an MCP client for the gateway, or None when not configured."""
    if not GATEWAY_URL or not COGNITO_CLIENT_ID or not COGNITO_CLIENT_SECRET:
        print("⚠️  Gateway is not fully configured, skipping gateway tools")
        return None
    token = fetch_gateway_token()
    return MCPClient(lambda: streamablehttp_client(
        GATEWAY_URL,
        headers={"Authorization": f"Bearer {token}"}
    ))
`

const modelBlock = `
model = BedrockModel(
    model_id=MODEL_ID,
    region_name=REGION,
    temperature=TEMPERATURE
)
`

const baseToolsLine = "\nbase_tools = [%s]\n"

const runtimeAppLine = "\napp = BedrockAgentCoreApp()\n"

const runAgentHeader = `
def run_agent(user_input, actor_id="user_001", session_id="session_001"):
    """Run one agent turn and return the response text."""
`

const entrypointHeader = `
@app.entrypoint
def invoke(payload):
    """Handle one AgentCore Runtime invocation."""
    user_input = payload.get("prompt", "")
    actor_id = payload.get("actor_id", "user_001")
    session_id = payload.get("session_id", "session_001")
    if not user_input:
        return {"error": "payload must include a prompt"}
`

const turnMemoryPrelude = `    prompt = user_input
    context = load_customer_context(actor_id, user_input)
    if context:
        prompt = f"Customer context:\n{context}\n\n{user_input}"
`

const turnPlainPrelude = `    prompt = user_input
`

const turnGatewayAnswer = `    gateway_client = open_gateway_client()
    if gateway_client is not None:
        with gateway_client:
            tools = base_tools + gateway_client.list_tools_sync()
            agent = Agent(model=model, system_prompt=SYSTEM_PROMPT, tools=tools)
            answer = str(agent(prompt))
    else:
        agent = Agent(model=model, system_prompt=SYSTEM_PROMPT, tools=base_tools)
        answer = str(agent(prompt))
`

const turnPlainAnswer = `    agent = Agent(model=model, system_prompt=SYSTEM_PROMPT, tools=base_tools)
    answer = str(agent(prompt))
`

const turnMemorySave = `    save_conversation(actor_id, session_id, user_input, answer)
`

const standaloneMain = `
if __name__ == "__main__":
    print(%s)
    while True:
        try:
            user_input = input("\nYou: ").strip()
        except (EOFError, KeyboardInterrupt):
            break
        if user_input.lower() in ("quit", "exit"):
            break
        if not user_input:
            continue
        print(f"\nAgent: {run_agent(user_input)}")
`

const runtimeMain = `
if __name__ == "__main__":
    app.run()
`
