package catalog

func subscriptions() Group {
	return Group{
		Name:        "Subscriptions",
		Description: "Order subscriptions. Postman sends these over HTTP; point a websocket client at {{ws_endpoint}} to stream them.",
		Operations: []Operation{
			{
				Name:        "Subscribe Place Order",
				Description: "Stream newly placed orders for a restaurant",
				Query: gql(`
					subscription SubscribePlaceOrder($restaurant: String!) {
					  subscribePlaceOrder(restaurant: $restaurant) {
					    userId
					    origin
					    order {
					      _id
					      orderId
					      restaurant {
					        _id
					        name
					        image
					        address
					        location {
					          coordinates
					        }
					      }
					      deliveryAddress {
					        location {
					          coordinates
					        }
					        deliveryAddress
					        details
					        label
					      }
					      items {
					        _id
					        title
					        description
					        image
					        quantity
					        variation {
					          _id
					          title
					          price
					          discounted
					        }
					        addons {
					          _id
					          options {
					            _id
					            title
					            description
					            price
					          }
					          description
					          title
					          quantityMinimum
					          quantityMaximum
					        }
					        specialInstructions
					        isActive
					        createdAt
					        updatedAt
					      }
					      user {
					        _id
					        name
					        phone
					        email
					      }
					      paymentMethod
					      paidAmount
					      orderAmount
					      orderStatus
					      status
					      paymentStatus
					      reason
					      isActive
					      createdAt
					      deliveryCharges
					      rider {
					        _id
					        name
					        username
					        available
					      }
					    }
					  }
					}
				`),
				Variables: map[string]any{"restaurant": "restaurant_id"},
			},
			{
				Name:        "Subscription Order",
				Description: "Stream status changes of a single order",
				Query: gql(`
					subscription SubscriptionOrder($id: String!) {
					  subscriptionOrder(id: $id) {
					    _id
					    orderStatus
					    rider {
					      _id
					    }
					  }
					}
				`),
				Variables: map[string]any{"id": "order_id"},
			},
		},
	}
}
