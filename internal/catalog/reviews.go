package catalog

func ratings() Group {
	return Group{
		Name:        "Ratings",
		Description: "Restaurant reviews and ratings",
		Operations: []Operation{{
			Name:        "Get Restaurant Reviews",
			Description: "Get reviews, average rating and total for a restaurant",
			Query: gql(`
				query Reviews($restaurant: String!) {
				  reviewsByRestaurant(restaurant: $restaurant) {
				    reviews {
				      _id
				      order {
				        _id
				        orderId
				        items {
				          title
				        }
				        user {
				          _id
				          name
				          email
				        }
				      }
				      restaurant {
				        _id
				        name
				        image
				      }
				      rating
				      description
				      createdAt
				    }
				    ratings
				    total
				  }
				}
			`),
			Variables: map[string]any{"restaurant": "restaurant_id"},
		}},
	}
}
