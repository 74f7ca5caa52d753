package watcher

// Page-side scripts. All state lives on window.__rpQueue / per-node
// data-rp-* attributes so re-evaluation after navigation is harmless.

// armTimelineJS installs the MutationObserver on the timeline and injects
// Reply/Quote controls into every post's actions bar. Returns whether the
// timeline container was present.
const armTimelineJS = `
	(function() {
		window.__rpQueue = window.__rpQueue || [];
		window.__rpNextId = window.__rpNextId || 1;

		const process = (article) => {
			if (!article || article.hasAttribute('data-rp-processed')) return;
			article.setAttribute('data-rp-processed', 'true');

			const actions = article.querySelector('[role="group"]');
			if (!actions) return;

			const id = window.__rpNextId++;
			article.setAttribute('data-rp-id', String(id));

			const make = (label, kind) => {
				const b = document.createElement('button');
				b.textContent = label;
				b.className = 'rp-generate-button';
				b.setAttribute('data-rp-kind', kind);
				b.setAttribute('data-rp-label', label);
				b.onclick = (e) => {
					e.preventDefault();
					e.stopPropagation();
					if (b.disabled) return;
					b.disabled = true;
					b.textContent = 'Generating...';
					window.__rpQueue.push({ id: id, kind: kind });
				};
				actions.appendChild(b);
			};
			make('Reply', 'reply');
			make('Quote', 'quote');
		};

		const timeline = document.querySelector('[data-testid="primaryColumn"]');
		if (!timeline) return false;

		if (!timeline.hasAttribute('data-rp-observed')) {
			timeline.setAttribute('data-rp-observed', 'true');
			new MutationObserver((mutations) => {
				for (const mutation of mutations) {
					for (const node of mutation.addedNodes) {
						if (node.nodeType !== Node.ELEMENT_NODE) continue;
						if (node.tagName === 'ARTICLE') process(node);
						if (node.querySelectorAll) {
							node.querySelectorAll('article').forEach(process);
						}
					}
				}
			}).observe(timeline, { childList: true, subtree: true });
		}

		timeline.querySelectorAll('article').forEach(process);
		return true;
	})()
`

// armCatalogJS injects the Generate Product control next to the catalog
// page's image-URL input.
const armCatalogJS = `
	(function() {
		window.__rpQueue = window.__rpQueue || [];

		const input = document.querySelector('input[type="text"][placeholder*="URL"]');
		if (!input || input.hasAttribute('data-rp-processed')) return false;
		input.setAttribute('data-rp-processed', 'true');

		const b = document.createElement('button');
		b.textContent = 'Generate Product';
		b.className = 'rp-generate-button rp-catalog-button';
		b.onclick = (e) => {
			e.preventDefault();
			const url = input.value.trim();
			if (!url) {
				alert('Please enter an image URL first');
				return;
			}
			if (b.disabled) return;
			b.disabled = true;
			b.textContent = 'Generating...';
			window.__rpQueue.push({ id: 0, kind: 'product', imageUrl: url });
		};
		input.parentNode.appendChild(b);
		return true;
	})()
`

// drainQueueJS hands queued clicks over and empties the queue.
const drainQueueJS = `
	(function() {
		const q = window.__rpQueue || [];
		window.__rpQueue = [];
		return q;
	})()
`

// resetPostButtonsJS toggles the controls for one post. Format args:
// post id (int), busy (bool).
const resetPostButtonsJS = `
	(function() {
		const busy = %[2]t;
		document.querySelectorAll('article[data-rp-id="%[1]d"] .rp-generate-button').forEach((b) => {
			b.disabled = busy;
			b.textContent = busy ? 'Generating...' : b.getAttribute('data-rp-label');
		});
	})()
`

// resetCatalogButtonJS toggles the catalog control. Format arg: busy (bool).
const resetCatalogButtonJS = `
	(function() {
		const busy = %[1]t;
		document.querySelectorAll('.rp-catalog-button').forEach((b) => {
			b.disabled = busy;
			b.textContent = busy ? 'Generating...' : 'Generate Product';
		});
	})()
`
