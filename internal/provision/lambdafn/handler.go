package lambdafn

// handlerSource is the Python handler deployed as the function body. It
// carries its own mock order database so the demo works without any
// further setup.
const handlerSource = `import json
from datetime import datetime, timedelta

# Mock order database
ORDERS = {
    "ORD-001": {
        "order_id": "ORD-001",
        "product_name": "Dell XPS 15 Laptop",
        "purchase_date": (datetime.now() - timedelta(days=15)).strftime("%Y-%m-%d"),
        "amount": 1299.99,
        "category": "electronics",
        "condition": "unopened",
        "status": "delivered"
    },
    "ORD-002": {
        "order_id": "ORD-002",
        "product_name": "iPhone 13 Pro",
        "purchase_date": (datetime.now() - timedelta(days=45)).strftime("%Y-%m-%d"),
        "amount": 999.99,
        "category": "electronics",
        "condition": "opened",
        "status": "delivered"
    },
    "ORD-003": {
        "order_id": "ORD-003",
        "product_name": "Samsung Galaxy Tab S8",
        "purchase_date": (datetime.now() - timedelta(days=5)).strftime("%Y-%m-%d"),
        "amount": 649.99,
        "category": "electronics",
        "condition": "defective",
        "status": "delivered"
    }
}

def calculate_return_eligibility(order):
    """Calculate if order is eligible for return"""
    purchase_date = datetime.strptime(order["purchase_date"], "%Y-%m-%d")
    days_since_purchase = (datetime.now() - purchase_date).days

    # 30-day return window for electronics
    if days_since_purchase > 30:
        return {
            "eligible": False,
            "reason": f"Return window expired ({days_since_purchase} days since purchase)",
            "days_remaining": 0
        }

    # Defective items always eligible within window
    if order["condition"] == "defective":
        return {
            "eligible": True,
            "reason": "Defective item - full refund available",
            "days_remaining": 30 - days_since_purchase
        }

    return {
        "eligible": True,
        "reason": "Within return window",
        "days_remaining": 30 - days_since_purchase
    }

def lambda_handler(event, context):
    """
    Lambda handler for order lookup.
    Expected input: {"order_id": "ORD-001"}
    """
    try:
        order_id = event.get("order_id", "").upper()

        if not order_id:
            return {
                "statusCode": 400,
                "body": json.dumps({
                    "error": "Missing order_id parameter"
                })
            }

        order = ORDERS.get(order_id)

        if not order:
            return {
                "statusCode": 404,
                "body": json.dumps({
                    "error": f"Order {order_id} not found",
                    "available_orders": list(ORDERS.keys())
                })
            }

        eligibility = calculate_return_eligibility(order)

        response_data = {
            "order_id": order["order_id"],
            "product_name": order["product_name"],
            "purchase_date": order["purchase_date"],
            "amount": order["amount"],
            "category": order["category"],
            "condition": order["condition"],
            "status": order["status"],
            "return_eligibility": eligibility
        }

        return {
            "statusCode": 200,
            "body": json.dumps(response_data)
        }

    except Exception as e:
        return {
            "statusCode": 500,
            "body": json.dumps({
                "error": f"Internal error: {str(e)}"
            })
        }
`
