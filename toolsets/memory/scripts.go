package memory

// Script templates. Placeholders are filled with Python literals
// produced by internal/script, so caller-supplied values can never
// break out of the generated source.

const createScript = `#!/usr/bin/env python3
"""
Script to create AgentCore Memory.

This script creates an AgentCore Memory resource with memory strategies.
"""

import json
from bedrock_agentcore_starter_toolkit.operations.memory.manager import MemoryManager

# Define memory strategies in boto3 tagged union format
strategies = %s

# Create memory manager
memory_manager = MemoryManager(region_name=%s)

# Create memory
print("Creating AgentCore Memory...")
memory = memory_manager.get_or_create_memory(
    name=%s,
    description=%s,
    strategies=strategies
)

# Extract memory_id
memory_id = memory["id"]

# Save memory_id to config file
config = {
    "memory_id": memory_id,
    "name": %s,
    "region": %s
}

with open('memory_config.json', 'w') as f:
    json.dump(config, f, indent=2)

print(f"✓ Memory created successfully!")
print(f"  Memory ID: {memory_id}")
print(f"✓ Configuration saved to memory_config.json")
`

const createEventScript = `#!/usr/bin/env python3
"""
Script to store conversation messages in AgentCore Memory.
"""

import json
import time

try:
    from bedrock_agentcore.memory import MemoryClient
except ImportError:
    print("✗ Error: bedrock_agentcore package not found")
    print("  Install with: pip install bedrock-agentcore")
    exit(1)

# Load memory_id from config
with open('memory_config.json') as f:
    config = json.load(f)
    memory_id = config['memory_id']

print(f"Using Memory ID: {memory_id}")

# Create memory client
memory_client = MemoryClient(region_name=%s)

# Define messages
messages = %s

# Normalize message format to match notebook expectations
for m in messages:
    if isinstance(m.get("content"), str):
        m["content"] = [{"text": m["content"]}]

# Store messages
print("Storing messages in memory...")
memory_client.create_event(
    memory_id=memory_id,
    actor_id=%s,
    session_id=%s,
    messages=messages
)

print(f"✓ Stored {len(messages)} messages successfully!")
print("\nNote: Memory processing takes 20-30 seconds to extract preferences, facts, and summaries.")
print("Waiting 30 seconds for memory processing...")
time.sleep(30)
print("✓ Memory processing complete!")
`

const retrieveScript = `#!/usr/bin/env python3
"""
Script to retrieve memories from AgentCore Memory.
"""

import json

try:
    from bedrock_agentcore.memory import MemoryClient
except ImportError:
    print("✗ Error: bedrock_agentcore package not found")
    print("  Install with: pip install bedrock-agentcore")
    exit(1)

# Load memory_id from config
with open('memory_config.json') as f:
    config = json.load(f)
    memory_id = config['memory_id']

print(f"Using Memory ID: {memory_id}")

# Create memory client
memory_client = MemoryClient(region_name=%s)

namespace = %s
query = %s
top_k = %d

print(f"Retrieving memories from namespace: {namespace}")
print(f"Search query: {query}")
print(f"Top K: {top_k}")
print()

try:
    # Use retrieve_memories() method with correct parameters
    memories = memory_client.retrieve_memories(
        memory_id=memory_id,
        namespace=namespace,
        query=query,
        top_k=top_k
    )

    if memories:
        print(f"✓ Retrieved {len(memories)} memories from '{namespace}' namespace")
        print()

        for i, memory in enumerate(memories, 1):
            print(f"Memory {i}:")
            print(f"─────────────────────────────────────────")
            content = memory.get('content', {})
            if isinstance(content, dict):
                text = content.get('text', 'N/A')
            else:
                text = str(content)
            print(f"Content: {text}")

            # Safe formatting for relevance score
            relevance = memory.get('relevanceScore', 'N/A')
            if isinstance(relevance, (int, float)):
                print(f"Relevance Score: {relevance:.3f}")
            else:
                print(f"Relevance Score: {relevance}")
            print()
    else:
        print("⚠️  No memories found")
        print("Memory extraction may still be processing (takes 20-30 seconds)")

except Exception as e:
    print(f"❌ Error retrieving memories: {e}")
    exit(1)
`

const deleteScript = `#!/usr/bin/env python3
"""
Script to delete AgentCore Memory.

WARNING: This permanently deletes the memory and all stored data.
RERUNNABLE: Safe to run multiple times - handles missing resources gracefully.
"""

import json
import os
from bedrock_agentcore_starter_toolkit.operations.memory.manager import MemoryManager

print("Deleting AgentCore Memory...")

# Check if memory config exists
if not os.path.exists('memory_config.json'):
    print("⚠️  Memory config not found - nothing to delete")
    print("✓ Script completed successfully (no resources to delete)")
    exit(0)

# Load memory_id from config
try:
    with open('memory_config.json') as f:
        config = json.load(f)
        memory_id = config['memory_id']
except Exception as e:
    print(f"⚠️  Failed to load memory config: {e}")
    print("✓ Script completed successfully (no resources to delete)")
    exit(0)

# Create memory manager
memory_manager = MemoryManager(region_name=%s)

# Delete memory
try:
    print(f"  Memory ID: {memory_id}")
    memory_manager.delete_memory(memory_id=memory_id)
    print("✓ Memory deleted successfully!")
except Exception as e:
    error_msg = str(e).lower()
    if "not found" in error_msg or "does not exist" in error_msg or "resourcenotfound" in error_msg:
        print("⚠️  Memory already deleted or not found")
        print("✓ Script completed successfully (resource already removed)")
    else:
        print(f"✗ Error deleting memory: {e}")
        exit(1)

print("\n✓ Memory deletion completed successfully")
print("✓ This script is RERUNNABLE - you can safely run it multiple times.")
`
