package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	_ = godotenv.Load()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotel.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Child tables first so foreign keys never dangle.
	log.Println("Cleaning old data...")
	for _, table := range []string{"statistics", "payments", "reservations", "messages", "testimonials", "blog_posts", "rooms", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s failed: %v", table, err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	admin := mustUser(db, "admin", "admin123", domain.RoleAdmin, "Hotel", "Admin")
	manager := mustUser(db, "manager", "manager123", domain.RoleManager, "Mara", "Manager")
	mustUser(db, "frontdesk", "desk123", domain.RoleReceptionist, "Rene", "Reception")
	log.Println("Staff created: admin/admin123, manager/manager123, frontdesk/desk123")

	guests := make([]domain.User, 0, 3)
	for i, name := range []string{"alice", "bob", "carol"} {
		g := mustUser(db, name, "guest123", domain.RoleClient, fmt.Sprintf("Guest%d", i+1), "Doe")
		guests = append(guests, g)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")
	types := []struct {
		t        domain.RoomType
		capacity int
		price    float64
	}{
		{domain.RoomStandard, 2, 90},
		{domain.RoomSuperior, 2, 120},
		{domain.RoomDeluxe, 3, 180},
		{domain.RoomSuite, 4, 320},
		{domain.RoomFamily, 5, 210},
	}
	rooms := make([]domain.Room, 0, 15)
	for floor := 1; floor <= 3; floor++ {
		for i, rt := range types {
			room := domain.Room{
				RoomNumber:         fmt.Sprintf("%d%02d", floor, i+1),
				Type:               rt.t,
				Capacity:           rt.capacity,
				PricePerNight:      rt.price + float64(floor-1)*10,
				Description:        fmt.Sprintf("%s room on floor %d", rt.t, floor),
				Status:             domain.RoomAvailable,
				HasAirConditioning: true,
				HasTV:              true,
				HasMinibar:         rt.t != domain.RoomStandard,
				HasSafe:            rt.t == domain.RoomSuite || rt.t == domain.RoomDeluxe,
				HasWifi:            true,
				ImageURLs:          datatypes.JSONSlice[string]{fmt.Sprintf("/static/rooms/%s-%d.jpg", rt.t, floor)},
			}
			if err := db.Create(&room).Error; err != nil {
				log.Fatalf("create room %s failed: %v", room.RoomNumber, err)
			}
			rooms = append(rooms, room)
		}
	}

	// ================== RESERVATIONS & PAYMENTS ==================
	log.Println("Creating reservations...")
	today := domain.DateOf(time.Now())
	for i, room := range rooms[:9] {
		guest := guests[i%len(guests)]
		checkIn := today.AddDate(0, 0, rng.Intn(60)-30)
		nights := 1 + rng.Intn(5)
		checkOut := checkIn.AddDate(0, 0, nights)

		status := domain.ReservationConfirmed
		switch {
		case checkOut.Before(today):
			status = domain.ReservationCheckedOut
		case !checkIn.After(today):
			status = domain.ReservationCheckedIn
		}

		res := domain.Reservation{
			ReservationNumber: fmt.Sprintf("RES-SEED%04d", i+1),
			UserID:            guest.ID,
			RoomID:            room.ID,
			CheckInDate:       checkIn,
			CheckOutDate:      checkOut,
			NumberOfGuests:    1 + rng.Intn(room.Capacity),
			TotalPrice:        domain.Round2(room.PricePerNight * float64(nights)),
			Status:            status,
		}
		if err := db.Create(&res).Error; err != nil {
			log.Fatalf("create reservation failed: %v", err)
		}

		pay := domain.Payment{
			TransactionID: fmt.Sprintf("TRX-SEED%04d", i+1),
			ReservationID: res.ID,
			Amount:        res.TotalPrice,
			PaymentMethod: domain.MethodCreditCard,
			Status:        domain.PaymentCompleted,
			PaymentDate:   checkIn.Add(-24 * time.Hour),
		}
		if err := db.Create(&pay).Error; err != nil {
			log.Fatalf("create payment failed: %v", err)
		}
	}

	// ================== CONTENT ==================
	log.Println("Creating blog posts and testimonials...")
	publishedAt := time.Now().UTC()
	posts := []domain.BlogPost{
		{Title: "Spa week is back", Content: "Ten percent off every treatment this week.", AuthorID: manager.ID, Tags: datatypes.JSONSlice[string]{"spa", "offers"}, Published: true, PublishedAt: &publishedAt},
		{Title: "Rooftop bar opening", Content: "Join us on the roof from Friday.", AuthorID: admin.ID, Tags: datatypes.JSONSlice[string]{"food", "news"}, Published: true, PublishedAt: &publishedAt},
		{Title: "Winter menu draft", Content: "Work in progress.", AuthorID: manager.ID, Tags: datatypes.JSONSlice[string]{"food"}},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			log.Fatalf("create blog post failed: %v", err)
		}
	}

	for i, g := range guests {
		t := domain.Testimonial{
			UserID:   g.ID,
			Content:  fmt.Sprintf("Lovely stay number %d.", i+1),
			Rating:   3 + rng.Intn(3),
			Approved: i < 2,
		}
		if err := db.Create(&t).Error; err != nil {
			log.Fatalf("create testimonial failed: %v", err)
		}
	}

	msg := domain.Message{
		SenderID:    manager.ID,
		RecipientID: guests[0].ID,
		Subject:     "Welcome",
		Content:     "Let us know if you need anything during your stay.",
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(&msg).Error; err != nil {
		log.Fatalf("create message failed: %v", err)
	}

	log.Println("Seed completed")
}

func mustUser(db *gorm.DB, username, password string, role domain.UserRole, first, last string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password for %s: %v", username, err)
	}
	u := domain.User{
		Username:     username,
		Email:        username + "@hotel.local",
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
		Enabled:      true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "password_hash", "role", "enabled", "updated_at"}),
	}).Create(&u).Error
	if err != nil {
		log.Fatalf("create user %s failed: %v", username, err)
	}
	return u
}
