package live

// ClientScript is the browser side of the live preview. It keeps a map from
// wire ids to DOM nodes, built from each snapshot, and replays patch frames
// against it. When the map cannot be built it falls back to reloading the
// page on the next patch.
const ClientScript = `
(function() {
    'use strict';

    var container = document.getElementById('vtree-root');
    var nodes = new Map();
    var version = 0;
    var stale = false;
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var utf8 = new TextDecoder();

    function Reader(bytes) { this.b = bytes; this.p = 0; }
    Reader.prototype.byte = function() { return this.b[this.p++]; };
    Reader.prototype.uvarint = function() {
        var v = 0, m = 1, c;
        do {
            c = this.b[this.p++];
            v += (c & 0x7f) * m;
            m *= 128;
        } while (c >= 0x80);
        return v;
    };
    Reader.prototype.str = function() {
        var n = this.uvarint();
        var s = utf8.decode(this.b.subarray(this.p, this.p + n));
        this.p += n;
        return s;
    };

    function snapshot(r) {
        version = r.uvarint();
        container.innerHTML = r.str();
        var count = r.uvarint(), ids = [];
        for (var i = 0; i < count; i++) ids.push(r.uvarint());

        nodes.clear();
        nodes.set(1, container);
        var i = 0;
        (function visit(n) {
            for (var c = n.firstChild; c; c = c.nextSibling) {
                nodes.set(ids[i++], c);
                visit(c);
            }
        })(container);
        stale = i !== ids.length;
    }

    function patches(r) {
        var v = r.uvarint();
        if (v <= version) return;
        if (stale) { location.reload(); return; }
        version = v;
        var count = r.uvarint();
        for (var i = 0; i < count; i++) apply(r);
    }

    function apply(r) {
        var kind = r.byte(), id = r.uvarint(), n = nodes.get(id), ns, name, parent, ref;
        switch (kind) {
        case 0x01:
            ns = r.str(); name = r.str();
            nodes.set(id, ns ? document.createElementNS(ns, name) : document.createElement(name));
            break;
        case 0x02: nodes.set(id, document.createTextNode(r.str())); break;
        case 0x03: nodes.set(id, document.createComment(r.str())); break;
        case 0x04:
            parent = nodes.get(r.uvarint()); ref = r.uvarint();
            parent.insertBefore(n, ref ? nodes.get(ref) : null);
            break;
        case 0x05: nodes.get(r.uvarint()).appendChild(n); break;
        case 0x06:
            parent = nodes.get(r.uvarint());
            if (n && n.parentNode === parent) parent.removeChild(n);
            nodes.delete(id);
            break;
        case 0x07: n.textContent = r.str(); break;
        case 0x08: name = r.str(); n.setAttribute(name, r.str()); break;
        case 0x09: n.removeAttribute(r.str()); break;
        case 0x0A: name = r.str(); n.style.setProperty(name, r.str()); break;
        case 0x0B: n.style.removeProperty(r.str()); break;
        case 0x0C: name = r.str(); n[name] = r.str(); break;
        }
    }

    function showError(r) {
        var code = r.str(), msg = r.str();
        console.error('[vtree] ' + code + ': ' + msg);
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.binaryType = 'arraybuffer';

        ws.onopen = function() { reconnectDelay = 1000; };
        ws.onmessage = function(e) {
            var bytes = new Uint8Array(e.data);
            var r = new Reader(bytes.subarray(6));
            switch (bytes[0]) {
            case 0x01: snapshot(r); break;
            case 0x02: patches(r); break;
            case 0x04: showError(r); break;
            }
        };
        ws.onclose = function() {
            setTimeout(connect, reconnectDelay);
            reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
        };
    }

    connect();
})();
`
