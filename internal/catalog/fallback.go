package catalog

// Default returns the built-in reference catalog. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Currency:          defaultCurrency,
		Plans:             defaultPlans(),
		AddOns:            defaultAddOns(),
		GalleryCategories: defaultGalleryCategories(),
		Gallery:           defaultGallery(),
		Trainers:          defaultTrainers(),
		Interests:         defaultInterests(),
	}
}

func defaultPlans() []PresetPlan {
	return []PresetPlan{
		{
			ID:                   1,
			Slug:                 "essential",
			Title:                "Essential",
			Subtitle:             "Perfect Start",
			Description:          "Start your wellness journey with essential amenities and expert guidance.",
			ButtonText:           "Start Essential",
			DiscountLabel:        "33% OFF",
			MonthlyPrice:         199,
			YearlyPrice:          1990,
			OriginalMonthlyPrice: 299,
			OriginalYearlyPrice:  2988,
			Features: []string{
				"Access to Main Fitness Zone",
				"Group Fitness Classes",
				"Standard Locker Room",
				"Member Mobile App",
				"Basic Equipment Access",
				"Complimentary Wellness Consultation",
			},
		},
		{
			ID:                   2,
			Slug:                 "premium",
			Title:                "Premium",
			Subtitle:             "Most Popular Choice",
			Description:          "Complete wellness experience with premium amenities and personalized services.",
			ButtonText:           "Choose Premium",
			Badge:                "Most Popular",
			DiscountLabel:        "33% OFF",
			MonthlyPrice:         399,
			YearlyPrice:          3990,
			OriginalMonthlyPrice: 599,
			OriginalYearlyPrice:  5988,
			Popular:              true,
			Features: []string{
				"All Essential Benefits",
				"Spa Zone Full Access",
				"Personal Training (3 sessions monthly)",
				"Beauty Zone Services (20% off)",
				"Nutritional Consultation",
				"Priority Class Booking",
				"Fitbar Healthy Meals (10% off)",
				"Weekend Wellness Workshops",
			},
		},
		{
			ID:                   3,
			Slug:                 "royal",
			Title:                "Crown Royal",
			Subtitle:             "Ultimate Luxury",
			Description:          "Ultimate luxury wellness with exclusive royal privileges and unlimited access.",
			ButtonText:           "Experience Crown Royal",
			DiscountLabel:        "30% OFF",
			MonthlyPrice:         699,
			YearlyPrice:          6990,
			OriginalMonthlyPrice: 999,
			OriginalYearlyPrice:  9988,
			Features: []string{
				"All Premium Benefits",
				"Unlimited Personal Training",
				"Private Training Sessions Available",
				"VIP Spa Treatment Suite",
				"Beauty Zone Priority Booking",
				"Exclusive Royal Events Access",
				"Concierge Wellness Services",
				"Guest Privileges (3 monthly passes)",
				"Complimentary Wellness Shopping",
			},
		},
	}
}

func defaultAddOns() []AddOnFeature {
	return []AddOnFeature{
		{
			ID:           "fitness-zone",
			Name:         "Fitness Zone",
			Description:  "Complete fitness facility access",
			MonthlyPrice: 149,
			YearlyPrice:  1490,
			Category:     CategoryFitness,
			Features: []string{
				"State-of-the-art equipment",
				"Cardio and strength training",
				"Functional training area",
				"Locker room access",
				"Equipment orientation",
			},
		},
		{
			ID:           "spa-wellness",
			Name:         "Spa Wellness",
			Description:  "Luxury spa and relaxation services",
			MonthlyPrice: 199,
			YearlyPrice:  1990,
			Category:     CategorySpa,
			Features: []string{
				"Sauna and steam rooms",
				"Relaxation lounges",
				"Massage treatments",
				"Aromatherapy sessions",
				"Recovery facilities",
			},
		},
		{
			ID:           "personal-services",
			Name:         "Personal Services",
			Description:  "Dedicated personal training and consultation",
			MonthlyPrice: 299,
			YearlyPrice:  2990,
			Category:     CategoryPersonal,
			Features: []string{
				"Personal training sessions",
				"Nutrition consultations",
				"Wellness assessments",
				"Custom workout plans",
				"Progress tracking",
			},
		},
		{
			ID:           "exclusive-access",
			Name:         "Exclusive Access",
			Description:  "VIP amenities and exclusive services",
			MonthlyPrice: 249,
			YearlyPrice:  2490,
			Category:     CategoryExclusive,
			Features: []string{
				"VIP lounge access",
				"Priority booking",
				"Guest passes",
				"Concierge services",
				"Exclusive events",
			},
		},
		{
			ID:           "womens-sanctuary",
			Name:         "Women's Sanctuary",
			Description:  "Private women-only facilities",
			MonthlyPrice: 179,
			YearlyPrice:  1790,
			Category:     CategoryExclusive,
			Features: []string{
				"Women-only fitness area",
				"Private spa treatments",
				"Female-only classes",
				"Cultural prayer space",
				"Modesty-focused amenities",
			},
		},
	}
}

func defaultGalleryCategories() []GalleryCategory {
	return []GalleryCategory{
		{ID: "fitness", Name: "Fitness Zone", Description: "State-of-the-art equipment"},
		{ID: "spa", Name: "Spa & Wellness", Description: "Luxury relaxation spaces"},
		{ID: "facilities", Name: "Facilities", Description: "Premium amenities"},
		{ID: "events", Name: "Events & Classes", Description: "Community activities"},
	}
}

// unsplash builds the full-size and thumbnail URLs for a photo id.
func unsplash(photo string) (src, thumb string) {
	base := "https://images.unsplash.com/photo-" + photo
	return base + "?w=800&h=600&fit=crop", base + "?w=400&h=300&fit=crop"
}

func galleryImage(id, photo, title, category, description string, featured bool) GalleryItem {
	src, thumb := unsplash(photo)
	return GalleryItem{
		ID:          id,
		Type:        "image",
		Src:         src,
		Thumbnail:   thumb,
		Title:       title,
		Category:    category,
		Description: description,
		Featured:    featured,
	}
}

func defaultGallery() []GalleryItem {
	return []GalleryItem{
		galleryImage("1", "1571019613454-1cb2f99b2d8b", "Main Fitness Floor", "fitness", "Our expansive main fitness floor featuring premium equipment from international brands", true),
		galleryImage("2", "1534438327276-14e5300c3a48", "Cardio Zone", "fitness", "Modern cardio equipment with panoramic city views", false),
		galleryImage("3", "1581009146145-b5ef050c2e1e", "Strength Training Area", "fitness", "Professional-grade strength training equipment and free weights", false),
		galleryImage("4", "1593079831268-3381b0db4a77", "Free Weights Section", "fitness", "Complete free weights area with premium dumbbells and barbells", false),
		galleryImage("5", "1571019614242-c5c5dee9f50b", "Functional Training", "fitness", "Dedicated functional training space with versatile equipment", false),
		galleryImage("6", "1571902943202-507ec2618e8f", "Luxury Spa Entrance", "spa", "Elegant spa entrance designed for tranquility and luxury", true),
		galleryImage("7", "1544161515-4ab6ce6db874", "Pool & Aquatic Center", "spa", "Temperature-controlled pools for relaxation and aquatic fitness", false),
		galleryImage("8", "1540555700478-4be289fbecef", "Sauna & Steam Rooms", "spa", "Traditional and infrared saunas with steam room facilities", false),
		galleryImage("9", "1596178065887-1198b6148b2b", "Massage Treatment Rooms", "spa", "Private treatment rooms for therapeutic and relaxation massages", false),
		galleryImage("10", "1571019613454-1cb2f99b2d8b", "Reception & Lobby", "facilities", "Elegant reception area with concierge services", true),
		galleryImage("11", "1571902943202-507ec2618e8f", "Women's Exclusive Zone", "facilities", "Private 800m² women-only fitness and wellness area", false),
		galleryImage("12", "1571019614242-c5c5dee9f50b", "Premium Locker Rooms", "facilities", "Spacious locker rooms with luxury amenities", false),
		galleryImage("13", "1593079831268-3381b0db4a77", "Juice Bar & Café", "facilities", "Healthy refreshments and post-workout nutrition", false),
		galleryImage("14", "1544367567-0f2fcb009e0b", "Yoga & Pilates Studio", "events", "Serene studio space for mind-body wellness classes", false),
		galleryImage("15", "1571019613454-1cb2f99b2d8b", "Group Fitness Classes", "events", "Dynamic group fitness sessions led by expert instructors", false),
		galleryImage("16", "1581009146145-b5ef050c2e1e", "Personal Training Sessions", "events", "One-on-one training with certified personal trainers", false),
		galleryImage("17", "1540555700478-4be289fbecef", "Wellness Workshops", "events", "Educational workshops on nutrition, wellness, and lifestyle", false),
	}
}

func defaultTrainers() []Trainer {
	return []Trainer{
		{
			ID:              "sarah-johnson",
			Name:            "Sarah Johnson",
			Title:           "Head Personal Trainer",
			Specializations: []string{"Strength Training", "Functional Fitness", "Nutrition Coaching"},
			Experience:      "8+ Years",
			Languages:       []string{"English", "Azerbaijani", "Turkish"},
			Image:           "/assets/images/trainer-1.jpg",
			Bio:             "Sarah brings international expertise to Crown Wellness Club with extensive experience in luxury fitness environments across Europe and the Middle East.",
			Certifications:  []string{"NASM-CPT", "Precision Nutrition Level 1", "TRX Certified"},
			Achievements:    []string{"Regional Fitness Champion 2021", "Elite Trainer Award 2022"},
			Availability:    "Mon-Fri: 6:00-20:00",
			Rating:          4.9,
		},
		{
			ID:              "ahmed-aliyev",
			Name:            "Ahmed Aliyev",
			Title:           "Wellness Specialist",
			Specializations: []string{"Yoga", "Mindfulness", "Recovery Training"},
			Experience:      "6+ Years",
			Languages:       []string{"Azerbaijani", "English", "Russian"},
			Image:           "/assets/images/trainer-2.jpg",
			Bio:             "Ahmed specializes in holistic wellness approaches, combining traditional Eastern practices with modern fitness methodologies.",
			Certifications:  []string{"RYT-500 Yoga", "Meditation Instructor", "Recovery Specialist"},
			Achievements:    []string{"Wellness Excellence Award", "Community Impact Recognition"},
			Availability:    "Tue-Sat: 7:00-19:00",
			Rating:          4.8,
		},
		{
			ID:              "elena-petrov",
			Name:            "Elena Petrov",
			Title:           "Spa & Beauty Director",
			Specializations: []string{"Spa Treatments", "Beauty Therapy", "Wellness Consulting"},
			Experience:      "10+ Years",
			Languages:       []string{"Russian", "English", "Azerbaijani"},
			Image:           "/assets/images/trainer-3.jpg",
			Bio:             "Elena leads our spa division with luxury hospitality experience from premier wellness resorts worldwide.",
			Certifications:  []string{"CIDESCO Diploma", "Aromatherapy Specialist", "Advanced Skincare"},
			Achievements:    []string{"Spa Excellence Award", "International Beauty Recognition"},
			Availability:    "Mon-Sat: 9:00-18:00",
			Rating:          5.0,
		},
		{
			ID:              "marcus-thompson",
			Name:            "Marcus Thompson",
			Title:           "Performance Coach",
			Specializations: []string{"Athletic Performance", "Sports Conditioning", "Injury Prevention"},
			Experience:      "12+ Years",
			Languages:       []string{"English", "German", "Azerbaijani"},
			Image:           "/assets/images/trainer-4.jpg",
			Bio:             "Former professional athlete turned elite performance coach, specializing in high-performance training protocols.",
			Certifications:  []string{"CSCS", "FMS Level 2", "Olympic Lifting Certified"},
			Achievements:    []string{"Elite Performance Coach 2023", "Athletic Excellence Award"},
			Availability:    "Mon-Fri: 5:00-21:00",
			Rating:          4.9,
		},
		{
			ID:              "aysel-mammadova",
			Name:            "Aysel Mammadova",
			Title:           "Women's Wellness Specialist",
			Specializations: []string{"Women's Fitness", "Prenatal Training", "Cultural Wellness"},
			Experience:      "7+ Years",
			Languages:       []string{"Azerbaijani", "Turkish", "English"},
			Image:           "/assets/images/trainer-5.jpg",
			Bio:             "Aysel leads our women's sanctuary programs, providing culturally sensitive fitness and wellness solutions.",
			Certifications:  []string{"Women's Fitness Specialist", "Prenatal Exercise", "Cultural Wellness"},
			Achievements:    []string{"Women's Wellness Pioneer", "Cultural Excellence Award"},
			Availability:    "Women's Hours: 8:00-22:00",
			Rating:          4.9,
		},
		{
			ID:              "david-rodriguez",
			Name:            "David Rodriguez",
			Title:           "Nutrition Director",
			Specializations: []string{"Sports Nutrition", "Weight Management", "Metabolic Health"},
			Experience:      "9+ Years",
			Languages:       []string{"English", "Spanish", "Azerbaijani"},
			Image:           "/assets/images/trainer-6.jpg",
			Bio:             "David oversees our comprehensive nutrition programs, combining scientific research with practical wellness solutions.",
			Certifications:  []string{"Registered Dietitian", "Sports Nutrition Specialist", "Metabolic Conditioning"},
			Achievements:    []string{"Nutrition Excellence Award", "Research Publication Author"},
			Availability:    "Mon-Fri: 8:00-17:00",
			Rating:          4.8,
		},
	}
}

func defaultInterests() []InterestOption {
	return []InterestOption{
		{Value: "essential", Label: "Essential Plan"},
		{Value: "premium", Label: "Premium Plan"},
		{Value: "royal", Label: "Crown Royal Plan"},
		{Value: "tour", Label: "Just a Tour"},
		{Value: "womens-exclusive", Label: "Women's Exclusive"},
	}
}
