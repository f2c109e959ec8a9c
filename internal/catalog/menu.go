package catalog

func categories() Group {
	return Group{
		Name:        "Categories",
		Description: "Restaurant menu category mutations",
		Operations: []Operation{
			{
				Name:        "Create Category",
				Description: "Create a menu category for a restaurant",
				Query: gql(`
					mutation CreateCategory($restaurantId: ID!, $title: String!, $description: String, $image: String) {
					  createCategory(restaurantId: $restaurantId, title: $title, description: $description, image: $image) {
					    _id
					    title
					    description
					    image
					    createdAt
					    updatedAt
					  }
					}
				`),
				Variables: map[string]any{
					"restaurantId": "restaurant_id",
					"title":        "Starters",
					"description":  "Small plates",
					"image":        "",
				},
			},
			{
				Name:        "Edit Category",
				Description: "Update title, ordering or visibility of a category",
				Query: gql(`
					mutation EditCategory($id: ID!, $title: String, $description: String, $image: String, $order: Int, $isActive: Boolean) {
					  updateCategory(id: $id, title: $title, description: $description, image: $image, order: $order, isActive: $isActive) {
					    _id
					    title
					    description
					    image
					    order
					    isActive
					    createdAt
					    updatedAt
					  }
					}
				`),
				Variables: map[string]any{
					"id":       "category_id",
					"title":    "Starters",
					"order":    1,
					"isActive": true,
				},
			},
			{
				Name:        "Delete Category",
				Description: "Delete a menu category",
				Query: gql(`
					mutation DeleteCategory($id: ID!) {
					  deleteCategory(id: $id)
					}
				`),
				Variables: map[string]any{"id": "category_id"},
			},
		},
	}
}

func food() Group {
	return Group{
		Name:        "Food",
		Description: "Restaurant product (food item) mutations",
		Operations: []Operation{
			{
				Name:        "Create Food",
				Description: "Create a product in a restaurant category",
				Query: gql(`
					mutation CreateProduct($restaurantId: ID!, $categoryId: ID, $productInput: ProductInput!) {
					  createProduct(restaurantId: $restaurantId, categoryId: $categoryId, productInput: $productInput) {
					    _id
					    title
					    description
					    image
					    price
					    discountedPrice
					    subCategory
					    isActive
					    available
					    isOutOfStock
					    variations {
					      _id
					      title
					      price
					      discounted
					      addons
					      isOutOfStock
					    }
					    createdAt
					    updatedAt
					  }
					}
				`),
				Variables: map[string]any{
					"restaurantId": "restaurant_id",
					"categoryId":   "category_id",
					"productInput": map[string]any{
						"title":       "Paneer Tikka",
						"description": "Grilled cottage cheese",
						"price":       249,
						"isActive":    true,
						"available":   true,
					},
				},
			},
			{
				Name:        "Edit Food",
				Description: "Update an existing product",
				Query: gql(`
					mutation UpdateProduct($id: ID!, $productInput: ProductInput!) {
					  updateProduct(id: $id, productInput: $productInput) {
					    _id
					    title
					    description
					    image
					    price
					    discountedPrice
					    subCategory
					    isActive
					    available
					    isOutOfStock
					    variations {
					      _id
					      title
					      price
					      discounted
					      addons
					      isOutOfStock
					    }
					    createdAt
					    updatedAt
					  }
					}
				`),
				Variables: map[string]any{
					"id": "product_id",
					"productInput": map[string]any{
						"title": "Paneer Tikka",
						"price": 229,
					},
				},
			},
			{
				Name:        "Delete Food",
				Description: "Delete a product",
				Query: gql(`
					mutation DeleteFood($id: ID!) {
					  deleteProduct(id: $id)
					}
				`),
				Variables: map[string]any{"id": "product_id"},
			},
		},
	}
}
