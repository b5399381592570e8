package view

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="css/profile.css">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css">
  <script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>
  <div id="profileContainer" class="profile-container">{{.Body}}</div>
  <script>
    document.addEventListener("click", async function (ev) {
      const wrap = ev.target.closest("[data-page]");
      if (!wrap) return;
      const base = "/profile/" + encodeURIComponent(wrap.dataset.uid);
      const headers = {"X-Page-Session": wrap.dataset.page};
      const friend = ev.target.closest("#friendBtn");
      if (friend) {
        friend.disabled = true;
        try {
          const res = await fetch(base + "/friend", {method: "POST", headers: headers, credentials: "same-origin"});
          const body = await res.json();
          if (body.redirect) { window.location.href = body.redirect; return; }
          if (!res.ok) { alert(body.error || "Failed to update friend status"); return; }
          friend.textContent = body.label;
        } finally {
          friend.disabled = false;
        }
        return;
      }
      const share = ev.target.closest("[data-share]");
      if (share) {
        const res = await fetch(base + "/share", {headers: headers, credentials: "same-origin"});
        const data = await res.json();
        if (navigator.share) {
          navigator.share(data).catch(console.error);
        } else {
          navigator.clipboard.writeText(data.url).then(function () { alert("Profile link copied to clipboard!"); });
        }
      }
    });
  </script>
</body>
</html>{{end}}`

const profileTemplate = `{{define "profile"}}<div class="profile-wrapper" data-page="{{.Page}}" data-uid="{{.Profile.ID}}" hx-headers='{"X-Page-Session": "{{.Page}}"}'>
  <div class="profile-header">
    <div class="profile-cover">
      <img src="{{cover .Profile.CoverPhoto}}" alt="Cover">
      {{if .Own}}<button class="edit-cover-btn" data-upload="cover"><i class="fas fa-camera"></i> Edit Cover</button>{{end}}
    </div>
    <div class="profile-info">
      <div class="profile-avatar-wrapper">
        <img src="{{avatar .Profile.PhotoURL .Profile.Name}}" class="profile-avatar" alt="Avatar">
        {{if .Own}}<button class="edit-avatar-btn" data-upload="avatar"><i class="fas fa-camera"></i></button>{{end}}
      </div>
      <div class="profile-details">
        <h1>{{esc .Profile.Name}}</h1>
        <p class="profile-username">@{{esc .Profile.Handle}}</p>
        <div class="profile-meta">
          <span><i class="fas fa-map-marker-alt"></i> {{if .Profile.Location}}{{esc .Profile.Location}}{{else}}Location not set{{end}}</span>
          <span><i class="fas fa-briefcase"></i> {{if .Profile.Occupation}}{{esc .Profile.Occupation}}{{else}}Not specified{{end}}</span>
          <span><i class="fas fa-calendar"></i> Joined {{formatDate .Profile.CreatedAt}}</span>
        </div>
        <div class="profile-bio">{{if .Profile.Bio}}{{esc .Profile.Bio}}{{else}}No bio yet.{{end}}</div>
        <div class="profile-stats">
          <div class="stat"><span class="stat-value">{{coins .Profile.ProfileViews}}</span><span class="stat-label">Profile Views</span></div>
          <div class="stat"><span class="stat-value">{{len .Portfolio}}</span><span class="stat-label">Portfolio</span></div>
          <div class="stat"><span class="stat-value">{{len .Reviews}}</span><span class="stat-label">Reviews</span></div>
          <div class="stat"><span class="stat-value">{{coins .Profile.Coins}}</span><span class="stat-label">Coins</span></div>
        </div>
        <div class="profile-actions">{{template "actions" .}}</div>
      </div>
    </div>
  </div>
  {{template "body" .}}
</div>{{end}}

{{define "actions"}}{{if .Own -}}
  <a href="/profile/edit" class="btn btn-primary"><i class="fas fa-edit"></i> Edit Profile</a>
  <button class="btn btn-outline" data-share><i class="fas fa-share-alt"></i> Share</button>
  <a href="settings.html" class="btn btn-outline"><i class="fas fa-cog"></i> Settings</a>
{{- else if .SignedIn -}}
  <a href="/profile/message/{{.Profile.ID}}" class="btn btn-primary"><i class="fas fa-envelope"></i> Message</a>
  <button class="btn btn-outline" id="friendBtn">{{.Friend.Label}}</button>
  <a href="/profile/gift/{{.Profile.ID}}" class="btn btn-outline"><i class="fas fa-gift"></i> Send Gift</a>
{{- else -}}
  <a href="{{.SignInURL}}" class="btn btn-primary"><i class="fas fa-sign-in-alt"></i> Sign in to Interact</a>
{{- end}}{{end}}`

const bodyTemplate = `{{define "body"}}<div id="profile-body">
  <div class="profile-tabs">
    {{- range .TabList}}
    <button class="tab-btn{{if eq . $.Tab}} active{{end}}" hx-get="/profile/{{$.Profile.ID}}/tab/{{.}}" hx-target="#profile-body" hx-swap="outerHTML"><i class="fas fa-{{tabIcon .}}"></i> {{.Title}}</button>
    {{- end}}
  </div>
  <div class="profile-content">
    {{- if eq .Tab "portfolio"}}{{template "portfolio" .}}
    {{- else if eq .Tab "reviews"}}{{template "reviews" .}}
    {{- else if eq .Tab "jobs"}}{{template "jobs" .}}
    {{- else if eq .Tab "gifts"}}{{template "gifts" .}}
    {{- else}}{{template "overview" .}}{{end}}
  </div>
</div>{{end}}

{{define "overview"}}<div class="tab-pane active" data-tab="overview">
  <div class="grid-2">
    <div class="card">
      <h3>About</h3>
      <div class="about-content">
        <p><strong>Full Name:</strong> {{or (esc .Profile.DisplayName) "Not set"}}</p>
        <p><strong>Email:</strong> {{or (esc .Profile.Email) "Not set"}}</p>
        <p><strong>Phone:</strong> {{or (esc .Profile.Phone) "Not set"}}</p>
        <p><strong>Location:</strong> {{or (esc .Profile.Location) "Not set"}}</p>
        <p><strong>Occupation:</strong> {{or (esc .Profile.Occupation) "Not set"}}</p>
        <p><strong>Website:</strong> {{if .Profile.Website}}<a href="{{.Profile.Website}}" target="_blank" rel="noopener">{{esc .Profile.Website}}</a>{{else}}Not set{{end}}</p>
      </div>
    </div>
    <div class="card">
      <h3>Skills</h3>
      <div class="skills-list">
        {{- range .Profile.Skills}}
        <span class="skill-tag">{{esc .}}</span>
        {{- else}}
        <p class="empty-state">No skills added yet.</p>
        {{- end}}
      </div>
    </div>
    <div class="card">
      <h3><i class="fas fa-gift"></i> Gift Statistics</h3>
      <div class="gift-stats">
        <div class="stat-item sent">
          <span class="stat-label">Gifts Sent</span>
          <span class="stat-value">{{.Gifts.Sent.Count}}</span>
          <span class="stat-sub">{{amount .Gifts.Sent.Total}} coins</span>
        </div>
        <div class="stat-item received">
          <span class="stat-label">Gifts Received</span>
          <span class="stat-value">{{.Gifts.Received.Count}}</span>
          <span class="stat-sub">{{amount .Gifts.Received.Total}} coins</span>
        </div>
      </div>
      {{if .Own}}<a href="send-gift.html" class="btn btn-primary btn-block"><i class="fas fa-gift"></i> Send a Gift</a>
      {{- else if .SignedIn}}<a href="/profile/gift/{{.Profile.ID}}" class="btn btn-primary btn-block"><i class="fas fa-gift"></i> Send a Gift</a>{{end}}
      <a href="{{.GiftHistoryURL}}" class="btn btn-outline btn-block gift-history-link"><i class="fas fa-history"></i> View All</a>
    </div>
    <div class="card">
      <h3>Recent Activity</h3>
      <div class="activity-list">
        {{- range .Activity}}
        <div class="activity-item">
          <i class="fas fa-{{.Icon}}"></i>
          <div><p>{{.Text}}</p><small>{{timeAgo .At}}</small></div>
        </div>
        {{- else}}
        <p class="no-activity">No recent activity</p>
        {{- end}}
      </div>
    </div>
  </div>
</div>{{end}}

{{define "portfolio"}}<div class="tab-pane active" data-tab="portfolio">
  <div class="portfolio-header">
    <h2>Portfolio</h2>
    {{if .Own}}<a href="settings.html?tab=portfolio" class="btn btn-primary"><i class="fas fa-plus"></i> Add Item</a>{{end}}
  </div>
  <div class="portfolio-grid">
    {{- range .Portfolio}}
    <div class="portfolio-card" id="portfolio-{{.ID}}">
      {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}" class="portfolio-image">{{end}}
      <div class="portfolio-content">
        <h3>{{esc .Title}}</h3>
        <p>{{esc .Description}}</p>
        {{if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener" class="portfolio-link">View Project</a>{{end}}
      </div>
      {{- if $.Own}}
      <div class="portfolio-actions">
        <button class="btn-icon" hx-post="/profile/{{$.Profile.ID}}/portfolio/{{.ID}}/delete" hx-confirm="Are you sure you want to delete this portfolio item?" hx-target="#profile-body" hx-swap="outerHTML"><i class="fas fa-trash"></i></button>
      </div>
      {{- end}}
    </div>
    {{- else}}
    <p class="empty-state no-portfolio">No portfolio items yet.</p>
    {{- end}}
  </div>
</div>{{end}}

{{define "reviews"}}<div class="tab-pane active" data-tab="reviews">
  <div class="reviews-header">
    <h2>Reviews</h2>
    {{if and .SignedIn (not .Own)}}
    <form class="review-form" hx-post="/profile/{{.Profile.ID}}/reviews" hx-target="#profile-body" hx-swap="outerHTML">
      <select name="rating">{{range $n := ratingChoices}}<option value="{{$n}}">{{$n}}</option>{{end}}</select>
      <textarea name="content" maxlength="2000" required></textarea>
      <button class="btn btn-primary" type="submit"><i class="fas fa-star"></i> Write Review</button>
    </form>
    {{end}}
  </div>
  <div class="reviews-summary">
    <div class="average-rating">
      <span class="rating-value">{{.Average}}</span>
      <div class="stars">{{stars .AverageValue}}</div>
      <span class="review-count">{{len .Reviews}} reviews</span>
    </div>
  </div>
  <div class="reviews-list">
    {{- range .Reviews}}
    <div class="review-card">
      <div class="review-header">
        <img src="{{avatar .ReviewerPhoto .ReviewerName}}" class="reviewer-avatar" alt="">
        <div>
          <h4>{{or (esc .ReviewerName) "Anonymous"}}</h4>
          <div class="stars">{{stars .Rating}}</div>
        </div>
        <span class="review-date">{{formatDate .CreatedAt}}</span>
      </div>
      <p class="review-content">{{esc .Content}}</p>
    </div>
    {{- else}}
    <p class="empty-state no-reviews">No reviews yet.</p>
    {{- end}}
  </div>
</div>{{end}}

{{define "jobs"}}<div class="tab-pane active" data-tab="jobs">
  <h2>Jobs</h2>
  <div class="jobs-list">
    {{- range .Jobs}}
    <div class="job-card">
      <h3>{{esc .Title}}</h3>
      <p>{{esc .Description}}</p>
      <div class="job-meta">
        <span>Budget: {{budget .Budget}}</span>
        <span>Status: {{esc .Status}}</span>
      </div>
      <a href="job-details.html?id={{.ID}}" class="btn btn-outline">View Job</a>
    </div>
    {{- else}}
    <p class="empty-state no-jobs">No jobs yet.</p>
    {{- end}}
  </div>
</div>{{end}}

{{define "gifts"}}<div class="tab-pane active" data-tab="gifts">
  <h2>Gift History</h2>
  <div class="gift-summary">
    <div class="summary-card sent">
      <i class="fas fa-arrow-up"></i>
      <div>
        <span class="label">Total Sent</span>
        <span class="value">{{.Gifts.Sent.Count}} gifts</span>
        <span class="sub">{{amount .Gifts.Sent.Total}} coins</span>
      </div>
    </div>
    <div class="summary-card received">
      <i class="fas fa-arrow-down"></i>
      <div>
        <span class="label">Total Received</span>
        <span class="value">{{.Gifts.Received.Count}} gifts</span>
        <span class="sub">{{amount .Gifts.Received.Total}} coins</span>
      </div>
    </div>
  </div>
  <div class="gift-filters">
    {{- range $f := giftFilters}}
    <button class="filter-btn{{if eq $f $.GiftFilter}} active{{end}}" hx-get="/profile/{{$.Profile.ID}}/gifts?filter={{$f}}" hx-target="#giftsList" hx-swap="outerHTML">{{filterTitle $f}}</button>
    {{- end}}
  </div>
  {{template "giftList" .}}
</div>{{end}}

{{define "giftList"}}<div id="giftsList" class="gifts-list" data-filter="{{.GiftFilter}}">
  {{- range .GiftItems}}
  <div class="gift-item {{.Direction}}">
    <div class="gift-icon"><i class="fas fa-gift"></i></div>
    <div class="gift-info">
      <div class="gift-header">
        <span class="gift-user">{{if eq .Direction "sent"}}To: {{esc .ReceiverName}}{{else}}From: {{esc .SenderName}}{{end}}</span>
        <span class="gift-amount">{{amount .Amount}} coins</span>
      </div>
      {{if .Message}}<div class="gift-message">&quot;{{esc .Message}}&quot;</div>{{end}}
      <div class="gift-footer">
        <span class="gift-type">{{esc .Type}}</span>
        <span class="gift-time">{{timeAgo .CreatedAt}}</span>
      </div>
    </div>
  </div>
  {{- else}}
  <div class="empty-state">
    <i class="fas fa-gift"></i>
    <p>{{.EmptyGifts}}</p>
  </div>
  {{- end}}
</div>{{end}}`

const errorTemplates = `{{define "notFound"}}<div class="error-message">
  <i class="fas fa-exclamation-triangle"></i>
  <h3>User Not Found</h3>
  <p>The profile you&#039;re looking for doesn&#039;t exist.</p>
  <a href="index.html" class="btn btn-primary">Go Home</a>
</div>{{end}}

{{define "loadError"}}<div class="error-message">
  <i class="fas fa-exclamation-triangle"></i>
  <h3>Error Loading Profile</h3>
  <p>{{esc .}}</p>
  <button onclick="location.reload()" class="btn btn-primary">Try Again</button>
</div>{{end}}`
