package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/config"
	"sewalink/backend/internal/docstore"
	"sewalink/backend/internal/domain/friends"
	"sewalink/backend/internal/domain/gifts"
	"sewalink/backend/internal/domain/jobs"
	"sewalink/backend/internal/domain/portfolio"
	"sewalink/backend/internal/domain/profile"
	"sewalink/backend/internal/domain/reviews"
	"sewalink/backend/internal/firebase"
	"sewalink/backend/internal/page"
	"sewalink/backend/internal/view"
)

func main() {
	uid := flag.String("uid", "", "profile uid to render")
	viewerUID := flag.String("viewer", "", "render as this signed-in uid (records a profile view)")
	tabName := flag.String("tab", string(page.TabOverview), "active tab: overview|portfolio|reviews|jobs|gifts")
	flag.Parse()
	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}
	tab, ok := page.ParseTab(*tabName)
	if !ok {
		log.Fatalf("unknown tab %q", *tabName)
	}

	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	defer clients.Close()
	store := docstore.NewFirestore(clients.Firestore)

	profiles := profile.NewRepo(store)
	loader := page.NewLoader(page.LoaderDeps{
		Profiles:  profiles,
		Portfolio: portfolio.NewService(portfolio.NewRepo(store), nil),
		Reviews:   reviews.NewService(reviews.NewRepo(store)),
		Jobs:      jobs.NewRepo(store),
		Gifts:     gifts.NewService(store, time.Minute),
		Friends:   friends.NewService(store, nil),
	})

	var viewer *authctx.Identity
	if *viewerUID != "" {
		viewer = &authctx.Identity{UID: *viewerUID}
		if p, err := profiles.Get(ctx, *viewerUID); err == nil {
			viewer.DisplayName = p.DisplayName
			viewer.Email = p.Email
		}
	}

	st, err := loader.Load(ctx, viewer, *uid)
	if err != nil {
		log.Fatalf("load %s: %v", *uid, err)
	}
	st.Tab = tab

	renderer, err := view.New(cfg.SiteName, time.Now)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	out, err := renderer.Page(st)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Fprint(os.Stdout, out)
}
