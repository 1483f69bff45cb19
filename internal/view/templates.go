package view

const headerTmpl = `{{define "header"}}
<div class="container flex justify-between items-center" style="height: 100%;">
    <a href="index.html" class="logo">WASEM&emsp;</a>
    <div class="flex items-center gap-md">
        <a href="products.html" class="hidden-mobile"><i class="ph ph-magnifying-glass" style="font-size:1.5rem"></i></a>
        <a href="cart.html" style="position:relative">
            <i class="ph ph-shopping-cart" style="font-size:1.5rem"></i>
            <span id="cart-count" style="position:absolute; top:-5px; right:-5px; background:black; color:white; font-size:0.7rem; padding:2px 5px; border-radius:10px;">{{.Badge}}</span>
        </a>
        {{- if .LoggedIn}}
        <a href="orders.html"><i class="ph ph-user" style="font-size:1.5rem"></i></a>
        {{- else}}
        <a href="login.html" class="btn btn-primary" style="padding: 6px 12px; font-size: 0.9rem;">Login</a>
        {{- end}}
    </div>
</div>
{{end}}`

const navTmpl = `{{define "nav"}}
{{- range .}}
<a class="nav-item{{if .Active}} active{{end}}" href="{{.Target}}">
    <i class="ph {{.Icon}} nav-icon"></i>
    <span>{{.Label}}</span>
</a>
{{- end}}
{{end}}`
