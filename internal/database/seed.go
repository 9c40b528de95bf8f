package database

import (
	"context"
	"fmt"

	"rapidreads/internal/models"
	"rapidreads/internal/repositories"

	"go.uber.org/zap"
)

// SampleProducts returns the starter catalog.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			LegacyID: 201, Title: "Harry Potter and the Order of the Phoenix", Author: "J.K. Rowling", Genre: "Fantasy",
			Price: 57, Image: "book1.jpeg", AvailableInventory: 7,
			Description: "The fifth book in the Harry Potter series follows Harry's fifth year at Hogwarts School of Witchcraft and Wizardry.",
		},
		{
			LegacyID: 202, Title: "A Long Petal of the Sea", Author: "Isabel Allende", Genre: "Historical",
			Price: 66, Image: "book2.jpg", AvailableInventory: 6,
			Description: "A sweeping novel that tells the story of Victor Dalmau, a young doctor, and Roser, a pregnant young woman, who flee the Spanish Civil War for Chile.",
		},
		{
			LegacyID: 203, Title: "Dear Edward: A Read with Jenna Pick", Author: "Ann Napolitano", Genre: "Fiction",
			Price: 51, Image: "book3.jpg", AvailableInventory: 8,
			Description: "A transcendent coming-of-age story about the sole survivor of a plane crash.",
		},
		{
			LegacyID: 204, Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction",
			Price: 55, Image: "book4.jpg", AvailableInventory: 5,
			Description: "Harper Lee's timeless classic explores themes of racial injustice and moral growth through the eyes of Scout Finch in 1930s Alabama.",
		},
		{
			LegacyID: 205, Title: "Atomic Habits", Author: "James Clear", Genre: "Self help",
			Price: 66, Image: "book5.jpg", AvailableInventory: 10,
			Description: "James Clear presents a comprehensive guide to building good habits and breaking bad ones.",
		},
		{
			LegacyID: 206, Title: "The Alchemist", Author: "Paulo Coelho", Genre: "Philosophical",
			Price: 53, Image: "book6.jpg", AvailableInventory: 10,
			Description: "Paulo Coelho's philosophical novel follows Santiago, a young shepherd, on his journey to find treasure.",
		},
		{
			LegacyID: 207, Title: "Famous Five: Five Go Off to Camp", Author: "Enid Blyton", Genre: "Adventure",
			Price: 34, Image: "book7.jpg", AvailableInventory: 8,
			Description: "Join the Famous Five on another exciting adventure as they go camping and discover mysterious happenings.",
		},
		{
			LegacyID: 208, Title: "Little Women", Author: "Louisa May Alcott", Genre: "Classic",
			Price: 65, Image: "book8.jpg", AvailableInventory: 9,
			Description: "Louisa May Alcott's beloved novel follows the lives of the four March sisters as they grow from childhood to womanhood.",
		},
		{
			LegacyID: 209, Title: "Middlemarch", Author: "George Eliot", Genre: "Commentary",
			Price: 95, Image: "book9.jpg", AvailableInventory: 6,
			Description: "George Eliot's masterpiece is set in the fictional town of Middlemarch and follows the lives of several characters.",
		},
		{
			LegacyID: 210, Title: "Mrs Dalloway", Author: "Virginia Woolf", Genre: "Literature",
			Price: 55, Image: "book10.jpg", AvailableInventory: 9,
			Description: "Virginia Woolf's modernist novel follows Clarissa Dalloway through a single day in post-World War I London.",
		},
		{
			LegacyID: 211, Title: "Continental Drift", Author: "Russell Banks", Genre: "Political",
			Price: 56, Image: "book11.jpg", AvailableInventory: 8,
			Description: "Russell Banks' powerful novel tells the parallel stories of a New Hampshire oil burner repairman and a Haitian refugee.",
		},
		{
			LegacyID: 212, Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", Genre: "Adventure",
			Price: 62, Image: "book12.jpg", AvailableInventory: 10,
			Description: "Antoine de Saint-Exupéry's beloved tale of a pilot who meets a young prince from another planet.",
		},
	}
}

// SeedSampleProducts inserts the starter catalog when the product store is
// empty. It returns the number of products inserted.
func SeedSampleProducts(ctx context.Context, repo repositories.ProductRepository, log *zap.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Debug("Product catalog already populated, skipping seed", zap.Int64("count", count))
		return 0, nil
	}

	products := SampleProducts()
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("failed to seed product %d: %w", products[i].LegacyID, err)
		}
	}
	log.Info("Sample product data initialized", zap.Int("count", len(products)))
	return len(products), nil
}
