// Package catalog provides an embeddable Go client for the product catalog:
// Redis-backed storage with semantic and substring product search, plus
// promo code management. It wires the same components the catalogd server
// uses, without the HTTP layer.
//
//	client, _ := catalog.New(ctx,
//	    catalog.WithRedis("localhost:6379", ""),
//	    catalog.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "text-embedding-3-small", 384),
//	)
//	defer client.Close()
//
//	p, _ := client.Products().Create(ctx, catalog.ProductInput{
//	    Name:        "Ceramic Vase",
//	    Description: "Hand-thrown stoneware vase",
//	    Category:    "home-decor",
//	    Price:       49.90,
//	})
//	hits, _ := client.Search().Semantic(ctx, "rustic pottery", catalog.SearchOptions{})
package catalog
