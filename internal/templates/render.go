package templates

// Template sources. Each template is a self-contained HTML document with
// inline styles so a rendered profile can be saved or served as a single
// file.

const minimalHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: Georgia, serif; max-width: 720px; margin: 3rem auto; color: #222; line-height: 1.5; }
  h1 { font-size: 1.8rem; margin-bottom: 0; }
  .role { color: #666; margin-top: 0.2rem; }
  .contact { font-size: 0.85rem; color: #444; margin: 0.8rem 0 1.6rem; }
  .contact a { color: #444; }
  h2 { font-size: 1rem; text-transform: uppercase; letter-spacing: 0.12em; border-bottom: 1px solid #ddd; padding-bottom: 0.3rem; margin-top: 2rem; }
  .entry { margin-bottom: 1.1rem; }
  .entry-head { display: flex; justify-content: space-between; }
  .entry-head strong { font-weight: 600; }
  .period { color: #888; font-size: 0.85rem; }
  ul { margin: 0.3rem 0 0 1.2rem; padding: 0; }
  .skills span { display: inline-block; margin-right: 0.6rem; }
</style>
</head>
<body>
<h1>{{.User.Resume.PersonalInfo.Name}}</h1>
<p class="role">{{.User.Resume.PersonalInfo.Role}}{{if gt .YearsExperience 0}} &middot; {{.YearsExperience}}+ years{{end}}</p>
<p class="contact">
  {{with .User.Resume.PersonalInfo.Email}}{{.}}{{end}}
  {{with .User.Resume.PersonalInfo.Phone}} &middot; {{.}}{{end}}
  {{with .User.Resume.PersonalInfo.GitHub}} &middot; <a href="{{.}}">GitHub</a>{{end}}
  {{with .User.Resume.PersonalInfo.LinkedIn}} &middot; <a href="{{.}}">LinkedIn</a>{{end}}
  {{with .User.Resume.PersonalInfo.Website}} &middot; <a href="{{.}}">Website</a>{{end}}
</p>
{{if .User.Resume.Experience}}
<h2>Experience</h2>
{{range .User.Resume.Experience}}
<div class="entry">
  <div class="entry-head"><strong>{{.Title}}, {{.Company}}</strong><span class="period">{{.Period}}</span></div>
  <div>{{.Description}}</div>
  {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
{{end}}
{{if .User.Resume.Projects}}
<h2>Projects</h2>
{{range .User.Resume.Projects}}
<div class="entry">
  <div class="entry-head"><strong>{{.Name}}</strong>{{with .Link}}<a class="period" href="{{.}}">{{.}}</a>{{end}}</div>
  <div>{{.Description}}</div>
  {{if .Technologies}}<div class="period">{{join .Technologies ", "}}</div>{{end}}
</div>
{{end}}
{{end}}
{{if .User.Resume.Education}}
<h2>Education</h2>
{{range .User.Resume.Education}}
<div class="entry">
  <div class="entry-head"><strong>{{.Degree}}, {{.Institution}}</strong><span class="period">{{.Year}}</span></div>
  <div>{{.Description}}</div>
</div>
{{end}}
{{end}}
{{if or .User.Resume.Skills.Technical .User.Resume.Skills.Soft}}
<h2>Skills</h2>
<p class="skills">
  {{range .User.Resume.Skills.Technical}}<span>{{.}}</span>{{end}}
  {{range .User.Resume.Skills.Soft}}<span><em>{{.}}</em></span>{{end}}
</p>
{{end}}
</body>
</html>`

const glassHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: 'Segoe UI', sans-serif; margin: 0; min-height: 100vh; background: linear-gradient(135deg, #667eea, #764ba2); padding: 3rem 1rem; }
  .card { max-width: 780px; margin: 0 auto; background: rgba(255,255,255,0.15); backdrop-filter: blur(14px); border: 1px solid rgba(255,255,255,0.3); border-radius: 18px; padding: 2.5rem; color: #fff; }
  header { display: flex; align-items: center; gap: 1.5rem; }
  img.photo { width: 96px; height: 96px; border-radius: 50%; border: 2px solid rgba(255,255,255,0.6); object-fit: cover; }
  h1 { margin: 0; font-weight: 300; font-size: 2rem; }
  .role { opacity: 0.85; }
  h2 { font-weight: 400; border-bottom: 1px solid rgba(255,255,255,0.35); padding-bottom: 0.3rem; margin-top: 2rem; }
  .pill { display: inline-block; background: rgba(255,255,255,0.22); border-radius: 999px; padding: 0.2rem 0.8rem; margin: 0.15rem; font-size: 0.8rem; }
  .entry { margin-bottom: 1rem; }
  .period { opacity: 0.7; font-size: 0.85rem; }
  a { color: #e0e7ff; }
</style>
</head>
<body>
<div class="card">
  <header>
    <img class="photo" src="{{.User.Resume.PersonalInfo.Photo}}" alt="{{.User.Resume.PersonalInfo.Name}}">
    <div>
      <h1>{{.User.Resume.PersonalInfo.Name}}</h1>
      <div class="role">{{.User.Resume.PersonalInfo.Role}}</div>
      <div class="period">{{.User.Resume.PersonalInfo.Email}}{{with .User.Resume.PersonalInfo.Phone}} &middot; {{.}}{{end}}</div>
    </div>
  </header>
  {{if .User.Resume.Experience}}
  <h2>Experience</h2>
  {{range .User.Resume.Experience}}
  <div class="entry">
    <strong>{{.Title}}</strong> &mdash; {{.Company}} <span class="period">{{.Period}}</span>
    <div>{{.Description}}</div>
    {{range .Achievements}}<span class="pill">{{.}}</span>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .User.Resume.Projects}}
  <h2>Projects</h2>
  {{range .User.Resume.Projects}}
  <div class="entry">
    <strong>{{.Name}}</strong>{{with .Link}} &middot; <a href="{{.}}">view</a>{{end}}
    <div>{{.Description}}</div>
    {{range .Technologies}}<span class="pill">{{.}}</span>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .User.Resume.Education}}
  <h2>Education</h2>
  {{range .User.Resume.Education}}
  <div class="entry"><strong>{{.Degree}}</strong> &mdash; {{.Institution}} <span class="period">{{.Year}}</span></div>
  {{end}}
  {{end}}
  {{if .User.Resume.Skills.Technical}}
  <h2>Skills</h2>
  {{range .User.Resume.Skills.Technical}}<span class="pill">{{.}}</span>{{end}}
  {{range .User.Resume.Skills.Soft}}<span class="pill">{{.}}</span>{{end}}
  {{end}}
</div>
</body>
</html>`

const luxuryHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: 'Playfair Display', Georgia, serif; background: #0d0d0f; color: #e8e2d6; margin: 0; padding: 3rem 1rem; }
  .sheet { max-width: 760px; margin: 0 auto; border: 1px solid #c9a85c; padding: 3rem; }
  h1 { font-size: 2.4rem; margin: 0; color: #c9a85c; letter-spacing: 0.04em; }
  .role { font-style: italic; color: #b5ae9e; margin-top: 0.3rem; }
  .rule { border: none; border-top: 1px solid #c9a85c; margin: 1.8rem 0; }
  h2 { color: #c9a85c; font-size: 1.05rem; letter-spacing: 0.2em; text-transform: uppercase; }
  .entry { margin-bottom: 1.3rem; }
  .period { color: #8d8676; font-size: 0.85rem; }
  ul { margin: 0.4rem 0 0 1.3rem; }
  a { color: #c9a85c; }
  .contact { font-size: 0.85rem; color: #b5ae9e; }
</style>
</head>
<body>
<div class="sheet">
  <h1>{{.User.Resume.PersonalInfo.Name}}</h1>
  <div class="role">{{.User.Resume.PersonalInfo.Role}}{{if gt .YearsExperience 0}}, {{.YearsExperience}}+ years of experience{{end}}</div>
  <div class="contact">{{.User.Resume.PersonalInfo.Email}}{{with .User.Resume.PersonalInfo.Phone}} &bull; {{.}}{{end}}{{with .User.Resume.PersonalInfo.Website}} &bull; <a href="{{.}}">{{.}}</a>{{end}}</div>
  <hr class="rule">
  {{if .User.Resume.Experience}}
  <h2>Experience</h2>
  {{range .User.Resume.Experience}}
  <div class="entry">
    <strong>{{.Title}}</strong> &mdash; {{.Company}}<br>
    <span class="period">{{.Period}}</span>
    <div>{{.Description}}</div>
    {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </div>
  {{end}}
  <hr class="rule">
  {{end}}
  {{if .User.Resume.Projects}}
  <h2>Selected Work</h2>
  {{range .User.Resume.Projects}}
  <div class="entry">
    <strong>{{.Name}}</strong>{{with .Link}} &mdash; <a href="{{.}}">{{.}}</a>{{end}}
    <div>{{.Description}}</div>
    {{if .Technologies}}<span class="period">{{join .Technologies " / "}}</span>{{end}}
  </div>
  {{end}}
  <hr class="rule">
  {{end}}
  {{if .User.Resume.Education}}
  <h2>Education</h2>
  {{range .User.Resume.Education}}
  <div class="entry"><strong>{{.Degree}}</strong>, {{.Institution}} <span class="period">{{.Year}}</span></div>
  {{end}}
  {{end}}
  {{if .User.Resume.Skills.Technical}}
  <h2>Expertise</h2>
  <p>{{join .User.Resume.Skills.Technical ", "}}</p>
  {{end}}
</div>
</body>
</html>`

const timelineHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2937; max-width: 760px; margin: 3rem auto; }
  h1 { margin-bottom: 0; }
  .role { color: #6b7280; }
  .timeline { border-left: 3px solid #3b82f6; margin: 2rem 0 2rem 0.5rem; padding-left: 1.5rem; }
  .event { position: relative; margin-bottom: 1.6rem; }
  .event::before { content: ""; position: absolute; left: -1.95rem; top: 0.3rem; width: 0.8rem; height: 0.8rem; background: #3b82f6; border-radius: 50%; }
  .period { color: #3b82f6; font-size: 0.8rem; font-weight: 600; text-transform: uppercase; }
  h2 { color: #111827; margin-top: 2.2rem; }
  .tag { background: #eff6ff; color: #1d4ed8; border-radius: 4px; padding: 0.15rem 0.5rem; font-size: 0.78rem; margin-right: 0.3rem; }
  ul { margin: 0.3rem 0 0 1.2rem; }
</style>
</head>
<body>
<h1>{{.User.Resume.PersonalInfo.Name}}</h1>
<div class="role">{{.User.Resume.PersonalInfo.Role}} &middot; {{.User.Resume.PersonalInfo.Email}}</div>
{{if .User.Resume.Experience}}
<h2>Career Timeline</h2>
<div class="timeline">
  {{range .User.Resume.Experience}}
  <div class="event">
    <div class="period">{{.Period}}</div>
    <strong>{{.Title}}</strong> at {{.Company}}
    <div>{{.Description}}</div>
    {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </div>
  {{end}}
</div>
{{end}}
{{if .User.Resume.Education}}
<h2>Education</h2>
<div class="timeline">
  {{range .User.Resume.Education}}
  <div class="event">
    <div class="period">{{.Year}}</div>
    <strong>{{.Degree}}</strong>, {{.Institution}}
    <div>{{.Description}}</div>
  </div>
  {{end}}
</div>
{{end}}
{{if .User.Resume.Projects}}
<h2>Projects</h2>
{{range .User.Resume.Projects}}
<div class="event" style="margin-bottom:1rem;">
  <strong>{{.Name}}</strong> {{with .Link}}<a href="{{.}}">&#8599;</a>{{end}}
  <div>{{.Description}}</div>
  {{range .Technologies}}<span class="tag">{{.}}</span>{{end}}
</div>
{{end}}
{{end}}
{{if .User.Resume.Skills.Technical}}
<h2>Skills</h2>
<p>{{range .User.Resume.Skills.Technical}}<span class="tag">{{.}}</span>{{end}}</p>
{{end}}
</body>
</html>`

const infographicHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: 'Segoe UI', sans-serif; background: #f8fafc; margin: 0; padding: 2rem 1rem; color: #0f172a; }
  .grid { max-width: 900px; margin: 0 auto; display: grid; grid-template-columns: 1fr 2fr; gap: 1.2rem; }
  .panel { background: #fff; border-radius: 12px; box-shadow: 0 1px 4px rgba(15,23,42,0.08); padding: 1.4rem; }
  .stat { font-size: 2.2rem; font-weight: 700; color: #0ea5e9; }
  .stat-label { color: #64748b; font-size: 0.85rem; text-transform: uppercase; letter-spacing: 0.08em; }
  h1 { margin: 0; font-size: 1.6rem; }
  h2 { font-size: 0.95rem; text-transform: uppercase; letter-spacing: 0.1em; color: #0ea5e9; }
  .bar { background: #e2e8f0; border-radius: 4px; height: 8px; margin: 0.25rem 0 0.8rem; }
  .bar > div { background: #0ea5e9; height: 8px; border-radius: 4px; width: 85%; }
  .entry { margin-bottom: 1rem; }
  .period { color: #64748b; font-size: 0.8rem; }
  img.photo { width: 100%; border-radius: 12px; object-fit: cover; }
</style>
</head>
<body>
<div class="grid">
  <div>
    <div class="panel">
      <img class="photo" src="{{.User.Resume.PersonalInfo.Photo}}" alt="{{.User.Resume.PersonalInfo.Name}}">
      <h1>{{.User.Resume.PersonalInfo.Name}}</h1>
      <div class="period">{{.User.Resume.PersonalInfo.Role}}</div>
      <div class="period">{{.User.Resume.PersonalInfo.Email}}</div>
    </div>
    <div class="panel" style="margin-top:1.2rem;">
      <div class="stat">{{.YearsExperience}}+</div>
      <div class="stat-label">Years Experience</div>
      <div class="stat">{{len .User.Resume.Projects}}</div>
      <div class="stat-label">Projects</div>
      <div class="stat">{{len .User.Resume.Skills.Technical}}</div>
      <div class="stat-label">Technical Skills</div>
    </div>
    {{if .User.Resume.Skills.Technical}}
    <div class="panel" style="margin-top:1.2rem;">
      <h2>Skills</h2>
      {{range .User.Resume.Skills.Technical}}
      <div>{{.}}</div><div class="bar"><div></div></div>
      {{end}}
    </div>
    {{end}}
  </div>
  <div>
    {{if .User.Resume.Experience}}
    <div class="panel">
      <h2>Experience</h2>
      {{range .User.Resume.Experience}}
      <div class="entry">
        <strong>{{.Title}}</strong> &mdash; {{.Company}}
        <div class="period">{{.Period}}</div>
        <div>{{.Description}}</div>
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .User.Resume.Projects}}
    <div class="panel" style="margin-top:1.2rem;">
      <h2>Projects</h2>
      {{range .User.Resume.Projects}}
      <div class="entry">
        <strong>{{.Name}}</strong>
        <div>{{.Description}}</div>
        {{if .Technologies}}<div class="period">{{join .Technologies ", "}}</div>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .User.Resume.Education}}
    <div class="panel" style="margin-top:1.2rem;">
      <h2>Education</h2>
      {{range .User.Resume.Education}}
      <div class="entry"><strong>{{.Degree}}</strong>, {{.Institution}} <span class="period">{{.Year}}</span></div>
      {{end}}
    </div>
    {{end}}
  </div>
</div>
</body>
</html>`

const polishedHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: 'Inter', 'Segoe UI', sans-serif; margin: 0; background: #fff; color: #18181b; }
  .hero { background: #18181b; color: #fafafa; padding: 3rem 2rem; }
  .hero-inner, main { max-width: 760px; margin: 0 auto; }
  h1 { margin: 0; font-size: 2rem; font-weight: 600; }
  .role { color: #a1a1aa; margin-top: 0.3rem; }
  main { padding: 2rem; }
  h2 { font-size: 1.1rem; font-weight: 600; margin-top: 2rem; }
  .entry { padding: 1rem; border: 1px solid #e4e4e7; border-radius: 10px; margin-bottom: 0.8rem; }
  .entry:hover { border-color: #18181b; }
  .period { color: #71717a; font-size: 0.85rem; }
  .chip { display: inline-block; border: 1px solid #d4d4d8; border-radius: 999px; padding: 0.15rem 0.7rem; font-size: 0.8rem; margin: 0.15rem; }
  a { color: #18181b; }
</style>
</head>
<body>
<div class="hero">
  <div class="hero-inner">
    <h1>{{.User.Resume.PersonalInfo.Name}}</h1>
    <div class="role">{{.User.Resume.PersonalInfo.Role}}</div>
    <div class="role">{{.User.Resume.PersonalInfo.Email}}{{with .User.Resume.PersonalInfo.LinkedIn}} &middot; <a style="color:#a1a1aa" href="{{.}}">LinkedIn</a>{{end}}</div>
  </div>
</div>
<main>
  {{if .User.Resume.Experience}}
  <h2>Experience</h2>
  {{range .User.Resume.Experience}}
  <div class="entry">
    <strong>{{.Title}}</strong> &middot; {{.Company}} <span class="period">{{.Period}}</span>
    <div>{{.Description}}</div>
    {{range .Achievements}}<span class="chip">{{.}}</span>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .User.Resume.Projects}}
  <h2>Projects</h2>
  {{range .User.Resume.Projects}}
  <div class="entry">
    <strong>{{.Name}}</strong>{{with .Link}} &middot; <a href="{{.}}">{{.}}</a>{{end}}
    <div>{{.Description}}</div>
    {{range .Technologies}}<span class="chip">{{.}}</span>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .User.Resume.Education}}
  <h2>Education</h2>
  {{range .User.Resume.Education}}
  <div class="entry"><strong>{{.Degree}}</strong>, {{.Institution}} <span class="period">{{.Year}}</span></div>
  {{end}}
  {{end}}
  {{if or .User.Resume.Skills.Technical .User.Resume.Skills.Soft}}
  <h2>Skills</h2>
  {{range .User.Resume.Skills.Technical}}<span class="chip">{{.}}</span>{{end}}
  {{range .User.Resume.Skills.Soft}}<span class="chip">{{.}}</span>{{end}}
  {{end}}
</main>
</body>
</html>`

const geometricHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.User.Resume.PersonalInfo.Name}} - {{.User.Resume.PersonalInfo.Role}}</title>
<style>
  body { font-family: 'Futura', 'Century Gothic', sans-serif; margin: 0; background: #fffef9; color: #1a1a2e; }
  .band { height: 14px; background: repeating-linear-gradient(45deg, #e94560, #e94560 24px, #16213e 24px, #16213e 48px, #f9c74f 48px, #f9c74f 72px); }
  .wrap { max-width: 760px; margin: 2.5rem auto; padding: 0 1rem; }
  h1 { font-size: 2.2rem; margin: 0; }
  h1 span { color: #e94560; }
  .role { color: #16213e; font-weight: 600; letter-spacing: 0.05em; text-transform: uppercase; font-size: 0.9rem; }
  h2 { display: inline-block; background: #16213e; color: #fffef9; padding: 0.25rem 0.9rem; transform: skew(-8deg); font-size: 0.95rem; margin-top: 2rem; }
  .entry { border-left: 4px solid #f9c74f; padding-left: 1rem; margin: 1rem 0; }
  .entry:nth-child(odd) { border-left-color: #e94560; }
  .period { color: #6c6f85; font-size: 0.82rem; }
  .hex { display: inline-block; background: #f9c74f; padding: 0.2rem 0.7rem; margin: 0.15rem; clip-path: polygon(8% 0, 92% 0, 100% 50%, 92% 100%, 8% 100%, 0 50%); font-size: 0.8rem; }
</style>
</head>
<body>
<div class="band"></div>
<div class="wrap">
  <h1>{{.User.Resume.PersonalInfo.Name}}<span>.</span></h1>
  <div class="role">{{.User.Resume.PersonalInfo.Role}}</div>
  <div class="period">{{.User.Resume.PersonalInfo.Email}}{{with .User.Resume.PersonalInfo.GitHub}} &middot; {{.}}{{end}}</div>
  {{if .User.Resume.Experience}}
  <h2>Experience</h2>
  {{range .User.Resume.Experience}}
  <div class="entry">
    <strong>{{.Title}}</strong> @ {{.Company}} <span class="period">{{.Period}}</span>
    <div>{{.Description}}</div>
    {{if .Achievements}}<div class="period">{{join .Achievements " / "}}</div>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .User.Resume.Projects}}
  <h2>Projects</h2>
  {{range .User.Resume.Projects}}
  <div class="entry">
    <strong>{{.Name}}</strong>
    <div>{{.Description}}</div>
    {{range .Technologies}}<span class="hex">{{.}}</span>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .User.Resume.Education}}
  <h2>Education</h2>
  {{range .User.Resume.Education}}
  <div class="entry"><strong>{{.Degree}}</strong>, {{.Institution}} <span class="period">{{.Year}}</span></div>
  {{end}}
  {{end}}
  {{if .User.Resume.Skills.Technical}}
  <h2>Skills</h2>
  <div>{{range .User.Resume.Skills.Technical}}<span class="hex">{{.}}</span>{{end}}</div>
  {{end}}
</div>
<div class="band"></div>
</body>
</html>`
